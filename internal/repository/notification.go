package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var ErrNotificationNotFound = dao.ErrNotificationNotFound

type NotificationDAO interface {
	Insert(ctx context.Context, notification dao.Notification) (dao.Notification, error)
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]dao.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) daoToDomain(n dao.Notification) domain.Notification {
	return domain.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      domain.NotificationType(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		OrderID:   n.OrderID,
		SkillID:   n.SkillID,
		CreatedAt: n.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Insert(ctx, dao.Notification{
		UserID:  notification.UserID,
		Type:    string(notification.Type),
		Title:   notification.Title,
		Message: notification.Message,
		OrderID: notification.OrderID,
		SkillID: notification.SkillID,
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, error) {
	notificationsDAO, err := r.dao.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	notifications := make([]domain.Notification, len(notificationsDAO))
	for i, n := range notificationsDAO {
		notifications[i] = r.daoToDomain(n)
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	if err := r.dao.MarkRead(ctx, userID, notificationID); err != nil {
		if err == dao.ErrNotificationNotFound {
			return ErrNotificationNotFound
		}

		return fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUnread -> %w", err)
	}

	return count, nil
}
