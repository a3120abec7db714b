package repository

import (
	"context"

	"gorm.io/gorm"

	"karkandu/internal/httpapi/models"
)

// BlogStats is an aggregate over the interaction log for one blog.
type BlogStats struct {
	BlogID        string `json:"blog_id"`
	Views         int64  `json:"views"`
	Clicks        int64  `json:"clicks"`
	Reads         int64  `json:"reads"`
	Likes         int64  `json:"likes"`
	Comments      int64  `json:"comments"`
	TotalReadTime int64  `json:"total_read_time"`
}

type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	AggregateByBlog(ctx context.Context) ([]BlogStats, error)
	AggregateForBlog(ctx context.Context, blogID string) (*BlogStats, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// Create appends the interaction row and applies its counter update on the
// blog in the same transaction. A crash can no longer leave the counter
// behind the log.
func (r *interactionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interaction).Error; err != nil {
			return err
		}

		update := map[string]any{}
		switch interaction.Type {
		case models.InteractionView:
			update["views_count"] = gorm.Expr("views_count + 1")
		case models.InteractionClick:
			update["clicks_count"] = gorm.Expr("clicks_count + 1")
		case models.InteractionRead:
			update["reads_count"] = gorm.Expr("reads_count + 1")
			update["total_read_time"] = gorm.Expr("total_read_time + ?", interaction.Duration)
		}
		// like/comment interactions are logged only; their counters are
		// maintained by the like and comment flows.
		if len(update) == 0 {
			return nil
		}

		return tx.Model(&models.Blog{}).
			Where("id = ?", interaction.BlogID).
			UpdateColumns(update).Error
	})
}

const statsSelect = `blog_id,
SUM(CASE WHEN type = 'view' THEN 1 ELSE 0 END) AS views,
SUM(CASE WHEN type = 'click' THEN 1 ELSE 0 END) AS clicks,
SUM(CASE WHEN type = 'read' THEN 1 ELSE 0 END) AS reads,
SUM(CASE WHEN type = 'like' THEN 1 ELSE 0 END) AS likes,
SUM(CASE WHEN type = 'comment' THEN 1 ELSE 0 END) AS comments,
SUM(CASE WHEN type = 'read' THEN duration ELSE 0 END) AS total_read_time`

// AggregateByBlog recomputes per-blog totals from the append-only log. The
// cached counters on Blog are a fast path; this is the authoritative number.
func (r *interactionRepository) AggregateByBlog(ctx context.Context) ([]BlogStats, error) {
	var stats []BlogStats
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Select(statsSelect).
		Group("blog_id").
		Order("views DESC").
		Scan(&stats).Error
	return stats, err
}

func (r *interactionRepository) AggregateForBlog(ctx context.Context, blogID string) (*BlogStats, error) {
	stats := BlogStats{BlogID: blogID}
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Select(statsSelect).
		Where("blog_id = ?", blogID).
		Group("blog_id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
