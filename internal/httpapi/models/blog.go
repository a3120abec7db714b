package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Blog struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	Title         string     `gorm:"size:120;not null" json:"title"`
	TitleTamil    string     `gorm:"size:400" json:"title_tamil"`
	Slug          string     `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	ContentTamil  string     `gorm:"type:text" json:"content_tamil"`
	Category      string     `gorm:"not null;index" json:"category"`
	Subcategory   string     `json:"subcategory"`
	Excerpt       string     `gorm:"size:300" json:"excerpt"`
	FeaturedImage string     `json:"featured_image"`
	Tags          string     `json:"tags"` // comma-separated, lowercase
	AuthorID      string     `gorm:"type:uuid;not null;index" json:"author_id"`
	IsPublished   bool       `gorm:"default:false;index" json:"is_published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`

	// Denormalized interaction counters. Updated in the same transaction as the
	// interaction/like/comment write that drives them; the stats service can
	// always recompute them from the append-only interaction log.
	ViewsCount    int64 `gorm:"default:0" json:"views_count"`
	ClicksCount   int64 `gorm:"default:0" json:"clicks_count"`
	ReadsCount    int64 `gorm:"default:0" json:"reads_count"`
	LikesCount    int64 `gorm:"default:0" json:"likes_count"`
	CommentsCount int64 `gorm:"default:0" json:"comments_count"`
	TotalReadTime int64 `gorm:"default:0" json:"total_read_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (blog *Blog) BeforeCreate(tx *gorm.DB) (err error) {
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}
	return
}

func (Blog) TableName() string {
	return "blogs"
}

// AvgReadTime is derived, never stored.
func (b *Blog) AvgReadTime() int64 {
	if b.ReadsCount == 0 {
		return 0
	}
	return b.TotalReadTime / b.ReadsCount
}
