package repository

import (
	"context"

	"gorm.io/gorm"

	"karkandu/internal/httpapi/models"
)

// AdminCommentFilters narrows the admin comment listing.
type AdminCommentFilters struct {
	BlogID string
	UserID string
	Search string
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	GetOnBlog(ctx context.Context, id, blogID string) (*models.Comment, error)
	ListTopLevel(ctx context.Context, blogID string, page, pageSize int) ([]models.Comment, int64, error)
	ListChildren(ctx context.Context, parentIDs []string, includeDeleted bool) ([]models.Comment, error)
	ChildIDs(ctx context.Context, parentIDs []string) ([]string, error)
	SoftDelete(ctx context.Context, blogID string, ids []string) error
	HardDelete(ctx context.Context, blogID string, ids []string) error
	ListAdmin(ctx context.Context, filters AdminCommentFilters, page, pageSize int) ([]models.Comment, int64, error)

	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) (bool, error)
	CountLikes(ctx context.Context, commentID string) (int64, error)
	LikeCounts(ctx context.Context, commentIDs []string) (map[string]int64, error)
	LikedByUser(ctx context.Context, commentIDs []string, userID string) (map[string]bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and bumps the blog's comment counter in one
// transaction, so the counter cannot drift from the comment table.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Blog{}).
			Where("id = ?", comment.BlogID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetOnBlog loads a comment only if it belongs to the given blog. Reply
// validation goes through this so a reply can never cross blogs.
func (r *commentRepository) GetOnBlog(ctx context.Context, id, blogID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND blog_id = ?", id, blogID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevel returns live root comments for a blog, newest first. Offset
// pagination: concurrent inserts can shift page boundaries.
func (r *commentRepository) ListTopLevel(ctx context.Context, blogID string, page, pageSize int) ([]models.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("blog_id = ? AND parent_id IS NULL AND is_deleted = ?", blogID, false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("blog_id = ? AND parent_id IS NULL AND is_deleted = ?", blogID, false).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListChildren returns the replies of the given parents, oldest first.
// parent_id is the source of truth; there is no stored replies array to go
// stale. includeDeleted is for the admin view.
func (r *commentRepository) ListChildren(ctx context.Context, parentIDs []string, includeDeleted bool) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).Where("parent_id IN ?", parentIDs)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	var comments []models.Comment
	err := query.
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// ChildIDs returns the ids of all direct children, deleted ones included.
// Used to walk the tree for cascade deletes.
func (r *commentRepository) ChildIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

// SoftDelete blanks the content and flags the rows; the tree structure stays
// intact. The blog's comment counter drops by the number of rows that were
// still live, in the same transaction as the flip.
func (r *commentRepository) SoftDelete(ctx context.Context, blogID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Comment{}).
			Where("id IN ? AND is_deleted = ?", ids, false).
			Updates(map[string]any{
				"is_deleted": true,
				"content":    models.DeletedContent,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Blog{}).
			Where("id = ?", blogID).
			UpdateColumn("comments_count", gorm.Expr("GREATEST(comments_count - ?, 0)", result.RowsAffected)).Error
	})
}

// HardDelete removes the rows and their like records for good, settling the
// blog's comment counter by the number of live rows removed.
func (r *commentRepository) HardDelete(ctx context.Context, blogID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live int64
		err := tx.Model(&models.Comment{}).
			Where("id IN ? AND is_deleted = ?", ids, false).
			Count(&live).Error
		if err != nil {
			return err
		}

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if live == 0 {
			return nil
		}
		return tx.Model(&models.Blog{}).
			Where("id = ?", blogID).
			UpdateColumn("comments_count", gorm.Expr("GREATEST(comments_count - ?, 0)", live)).Error
	})
}

// ListAdmin returns top-level comments for the admin panel, deleted ones
// included, with blog and author preloaded.
func (r *commentRepository) ListAdmin(ctx context.Context, filters AdminCommentFilters, page, pageSize int) ([]models.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Comment{}).Where("parent_id IS NULL")
	if filters.BlogID != "" {
		query = query.Where("blog_id = ?", filters.BlogID)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Search != "" {
		query = query.Where("content ILIKE ?", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	offset := (page - 1) * pageSize
	err := query.
		Preload("User").
		Preload("Blog").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// AddLike inserts into the likedBy set. A unique violation on the
// (comment_id, user_id) pair surfaces as gorm.ErrDuplicatedKey, which callers
// treat as "already liked".
func (r *commentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	like := models.CommentLike{CommentID: commentID, UserID: userID}
	return r.db.WithContext(ctx).Create(&like).Error
}

// RemoveLike deletes the membership row and reports whether it existed.
func (r *commentRepository) RemoveLike(ctx context.Context, commentID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&total).Error
	return total, err
}

func (r *commentRepository) LikeCounts(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CommentID string
		Total     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.CommentID] = r.Total
	}
	return counts, nil
}

func (r *commentRepository) LikedByUser(ctx context.Context, commentIDs []string, userID string) (map[string]bool, error) {
	liked := make(map[string]bool, len(commentIDs))
	if len(commentIDs) == 0 || userID == "" {
		return liked, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id IN ? AND user_id = ?", commentIDs, userID).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
