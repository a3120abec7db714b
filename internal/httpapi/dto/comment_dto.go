package dto

import (
	"time"

	"karkandu/internal/httpapi/models"
)

// CreateCommentDTO posts a comment, optionally as a reply.
type CreateCommentDTO struct {
	BlogID          string `json:"blogId" binding:"required"`
	Content         string `json:"content" binding:"required"`
	ParentCommentID string `json:"parentCommentId"`
}

// ReplyCommentDTO posts a reply to an existing comment.
type ReplyCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

// CommentAuthor is the public slice of a user shown on comments.
type CommentAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// CommentResponse is one comment with its first level of live replies.
type CommentResponse struct {
	ID        string            `json:"id"`
	BlogID    string            `json:"blog_id"`
	Content   string            `json:"content"`
	ParentID  *string           `json:"parent_id,omitempty"`
	IsDeleted bool              `json:"is_deleted"`
	User      CommentAuthor     `json:"user"`
	LikeCount int64             `json:"likeCount"`
	IsLiked   bool              `json:"isLiked"`
	Replies   []CommentResponse `json:"replies,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// FromComment builds the response for one comment. Deleted authors render as
// a placeholder so the frontend never sees a hole.
func FromComment(comment *models.Comment, likeCount int64, isLiked bool) CommentResponse {
	author := CommentAuthor{Name: "Deleted User"}
	if comment.User != nil {
		author = CommentAuthor{
			ID:     comment.User.ID,
			Name:   comment.User.Name,
			Avatar: comment.User.Avatar,
		}
	}

	return CommentResponse{
		ID:        comment.ID,
		BlogID:    comment.BlogID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		IsDeleted: comment.IsDeleted,
		User:      author,
		LikeCount: likeCount,
		IsLiked:   isLiked,
		CreatedAt: comment.CreatedAt,
	}
}

// CommentListResponse pages top-level comments.
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}

// CommentLikeResult reports the state after a like toggle.
type CommentLikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// AdminCommentResponse flattens a comment for the admin panel.
type AdminCommentResponse struct {
	ID        string                 `json:"id"`
	Content   string                 `json:"content"`
	IsDeleted bool                   `json:"is_deleted"`
	Author    string                 `json:"author"`
	BlogTitle string                 `json:"blogTitle"`
	BlogSlug  string                 `json:"blogSlug"`
	LikeCount int64                  `json:"likeCount"`
	Replies   []AdminCommentResponse `json:"replies"`
	CreatedAt time.Time              `json:"created_at"`
}

// AdminCommentListResponse pages the admin comment view.
type AdminCommentListResponse struct {
	Comments   []AdminCommentResponse `json:"comments"`
	Pagination Pagination             `json:"pagination"`
}
