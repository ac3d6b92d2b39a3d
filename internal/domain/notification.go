package domain

import "time"

type NotificationType string

const (
	NotifyOrderCreated    NotificationType = "order_created"
	NotifyOrderAccepted   NotificationType = "order_accepted"
	NotifyOrderCompleted  NotificationType = "order_completed"
	NotifyOrderCancelled  NotificationType = "order_cancelled"
	NotifyMessageReceived NotificationType = "message_received"
	NotifyReviewReceived  NotificationType = "review_received"
	NotifyPointsPurchased NotificationType = "points_purchased"
	NotifyPointsEarned    NotificationType = "points_earned"
	NotifySystem          NotificationType = "system"
)

type Notification struct {
	ID      uint             `json:"id"`
	UserID  uint             `json:"user_id"`
	Type    NotificationType `json:"notification_type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	IsRead  bool             `json:"is_read"`

	OrderID *uint `json:"order_id,omitempty"`
	SkillID *uint `json:"skill_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
