package service

import (
	"context"

	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

type NotificationService interface {
	List(ctx context.Context, userID string) ([]models.Notification, int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

// List returns the user's notifications newest first plus the unread count.
func (s *notificationService) List(ctx context.Context, userID string) ([]models.Notification, int64, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllAsRead(ctx, userID)
}
