package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletedContent replaces the body of a soft-deleted comment.
const DeletedContent = "[deleted]"

// Comment is a node in a blog's reply tree. ParentID is the single source of
// truth for the tree shape; child lists are always derived by querying
// parent_id, never stored on the parent.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	BlogID    string    `gorm:"type:uuid;not null;index:idx_comments_blog_created" json:"blog_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	IsDeleted bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"index:idx_comments_blog_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Blog *Blog `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"blog,omitempty"`
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}

// CommentLike is one user's like on one comment; the unique pair index makes
// the likedBy set idempotent at the storage layer.
type CommentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CommentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_pair" json:"comment_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_pair" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
