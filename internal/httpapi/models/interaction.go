package models

import "time"

// Interaction types accepted by the tracking endpoint.
const (
	InteractionView    = "view"
	InteractionClick   = "click"
	InteractionRead    = "read"
	InteractionLike    = "like"
	InteractionComment = "comment"
)

// ValidInteractionType reports whether t is one of the allowed types.
func ValidInteractionType(t string) bool {
	switch t {
	case InteractionView, InteractionClick, InteractionRead, InteractionLike, InteractionComment:
		return true
	}
	return false
}

// Interaction is an append-only log row. view/click/read rows drive the
// denormalized counters on Blog inside the same transaction as the insert;
// like/comment rows are logged only.
type Interaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlogID    string    `gorm:"type:uuid;not null;index" json:"blog_id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id,omitempty"` // nil for guests
	Type      string    `gorm:"not null;index" json:"type"`
	Duration  int64     `gorm:"default:0" json:"duration"` // seconds, read only
	CreatedAt time.Time `json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}
