package domain

import "time"

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

// ChatRoom is the single conversation attached to an order; only the
// order's buyer and seller participate.
type ChatRoom struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID         uint        `json:"id"`
	ChatRoomID uint        `json:"chat_room_id"`
	SenderID   uint        `json:"sender_id"`
	Type       MessageType `json:"message_type"`
	Content    string      `json:"content"`
	IsRead     bool        `json:"is_read"`
	CreatedAt  time.Time   `json:"created_at"`
}
