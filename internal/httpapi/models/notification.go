package models

import "time"

const (
	NotificationNewBlog      = "new_blog"
	NotificationCommentLike  = "comment_like"
	NotificationCommentReply = "comment_reply"
)

type Notification struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type             string    `gorm:"not null" json:"type"` // new_blog, comment_like, comment_reply
	Title            string    `gorm:"not null" json:"title"`
	Message          string    `gorm:"not null" json:"message"`
	RelatedBlogID    *string   `gorm:"type:uuid" json:"related_blog_id,omitempty"`
	RelatedCommentID *string   `gorm:"type:uuid" json:"related_comment_id,omitempty"`
	FromUserID       *string   `gorm:"type:uuid" json:"from_user_id,omitempty"`
	Read             bool      `gorm:"default:false" json:"read"`
	CreatedAt        time.Time `json:"created_at"`

	// Associations
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FromUser *User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
