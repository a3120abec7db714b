package repository

import (
	"context"

	"gorm.io/gorm"

	"karkandu/internal/httpapi/models"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context, page, pageSize int) ([]models.Contact, int64, error)
	MarkRead(ctx context.Context, id int64) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) List(ctx context.Context, page, pageSize int) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (r *contactRepository) MarkRead(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	ListEmails(ctx context.Context) ([]string, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

func (r *subscriberRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Pluck("email", &emails).Error
	return emails, err
}

type LoginLogRepository interface {
	Create(ctx context.Context, entry *models.LoginLog) error
	ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error)
}

type loginLogRepository struct {
	db *gorm.DB
}

func NewLoginLogRepository(db *gorm.DB) LoginLogRepository {
	return &loginLogRepository{db: db}
}

func (r *loginLogRepository) Create(ctx context.Context, entry *models.LoginLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *loginLogRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error) {
	var entries []models.LoginLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
