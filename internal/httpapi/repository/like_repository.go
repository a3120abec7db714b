package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"karkandu/internal/httpapi/models"
)

type LikeRepository interface {
	Toggle(ctx context.Context, blogID, userID string) (liked bool, likeCount int64, err error)
	Exists(ctx context.Context, blogID, userID string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the (blog, user) like inside one transaction: delete-if-present,
// else insert. The unique pair index is the arbiter, so a concurrent duplicate
// insert fails the uniqueness check instead of creating a second row. The
// likes_count adjustment rides the same transaction as the like row mutation.
func (r *likeRepository) Toggle(ctx context.Context, blogID, userID string) (bool, int64, error) {
	var liked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Blog{}).
				Where("id = ? AND likes_count > 0", blogID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
		}

		like := models.Like{BlogID: blogID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost a race against an identical toggle; the row exists,
				// the counter was already bumped by the winner.
				liked = true
				return nil
			}
			return err
		}

		liked = true
		return tx.Model(&models.Blog{}).
			Where("id = ?", blogID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		return false, 0, err
	}

	var likeCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", blogID).
		Pluck("likes_count", &likeCount).Error; err != nil {
		return liked, 0, err
	}

	return liked, likeCount, nil
}

func (r *likeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&total).Error
	return total > 0, err
}

// isUniqueViolation matches both gorm's translated error and the raw postgres
// error code, depending on which layer reported it first.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
