package repository

import (
	"context"

	"gorm.io/gorm"

	"karkandu/internal/httpapi/models"
)

// BlogFilters narrows public blog listings.
type BlogFilters struct {
	Category string
	Tag      string
	Search   string
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	GetPublished(ctx context.Context, id string) (*models.Blog, error)
	ListPublished(ctx context.Context, filters BlogFilters, page, pageSize int) ([]models.Blog, int64, error)
	ListAll(ctx context.Context, page, pageSize int) ([]models.Blog, int64, error)
	Featured(ctx context.Context, limit int) ([]models.Blog, error)
	Count(ctx context.Context) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Save(blog).Error
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{}).Error
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Author").
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		Preload("Author").
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// GetPublished loads a blog only if it is published. Comment and like flows
// go through this so nothing can be attached to a draft.
func (r *blogRepository) GetPublished(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_published = ?", id, true).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ListPublished(ctx context.Context, filters BlogFilters, page, pageSize int) ([]models.Blog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{}).Where("is_published = ?", true)
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Tag != "" {
		query = query.Where("tags LIKE ?", "%"+filters.Tag+"%")
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ? OR excerpt ILIKE ?", "%"+filters.Search+"%", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []models.Blog
	offset := (page - 1) * pageSize
	err := query.
		Preload("Author").
		Order("published_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *blogRepository) ListAll(ctx context.Context, page, pageSize int) ([]models.Blog, int64, error) {
	var blogs []models.Blog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *blogRepository) Featured(ctx context.Context, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("views_count DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Blog{}).Where("is_published = ?", true).Count(&total).Error
	return total, err
}
