package service

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var ErrNotificationNotFound = repository.ErrNotificationNotFound

// Notifier is the outbound collaborator informed after every committed
// order transition, ledger posting, chat message and review. Callers
// dispatch to it post-commit and fire-and-forget: a failed notification
// never rolls back the operation that produced it.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (s *NotificationService) Notify(ctx context.Context, notification domain.Notification) error {
	if _, err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("s.repo.Create -> %w", err)
	}

	return nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	if err := s.repo.MarkRead(ctx, userID, notificationID); err != nil {
		return err
	}

	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountUnread -> %w", err)
	}

	return count, nil
}
