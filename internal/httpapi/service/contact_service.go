package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

type ContactService interface {
	Submit(ctx context.Context, input dto.ContactDTO) error
	List(ctx context.Context, page, pageSize int) ([]models.Contact, int64, error)
	MarkRead(ctx context.Context, id int64) error
	Subscribe(ctx context.Context, email string) error
}

type contactService struct {
	contacts    repository.ContactRepository
	subscribers repository.SubscriberRepository
}

func NewContactService(contacts repository.ContactRepository, subscribers repository.SubscriberRepository) ContactService {
	return &contactService{contacts: contacts, subscribers: subscribers}
}

func (s *contactService) Submit(ctx context.Context, input dto.ContactDTO) error {
	return s.contacts.Create(ctx, &models.Contact{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	})
}

func (s *contactService) List(ctx context.Context, page, pageSize int) ([]models.Contact, int64, error) {
	return s.contacts.List(ctx, page, pageSize)
}

func (s *contactService) MarkRead(ctx context.Context, id int64) error {
	return s.contacts.MarkRead(ctx, id)
}

// Subscribe is idempotent: signing up twice with the same address succeeds
// without a second row, arbitrated by the unique index on email.
func (s *contactService) Subscribe(ctx context.Context, email string) error {
	subscriber := &models.Subscriber{Email: strings.ToLower(strings.TrimSpace(email))}
	err := s.subscribers.Create(ctx, subscriber)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
