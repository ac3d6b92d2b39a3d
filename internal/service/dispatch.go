package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap-api/internal/domain"
)

// dispatch delivers a notification after the producing transaction has
// committed, on its own goroutine and deadline. Delivery failure is logged
// and dropped; it must never surface into the committed operation.
func dispatch(notifier Notifier, notification domain.Notification) {
	if notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := notifier.Notify(ctx, notification); err != nil {
			zap.L().Error("failed to dispatch notification",
				zap.Uint("user_id", notification.UserID),
				zap.String("type", string(notification.Type)),
				zap.Error(err),
			)
		}
	}()
}
