package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a blog-level like. The unique (blog_id, user_id) index is the
// arbiter of one-like-per-user; toggling relies on it rather than on a
// read-then-write branch.
type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	BlogID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_blog_like_pair" json:"blog_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_blog_like_pair" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Blog *Blog `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"blog,omitempty"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (like *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	return
}

func (Like) TableName() string {
	return "likes"
}
