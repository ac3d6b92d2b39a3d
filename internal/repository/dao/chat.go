package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrChatRoomNotFound = errors.New("chat room not found")

type ChatRoom struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Message struct {
	ID         uint   `gorm:"primaryKey"`
	ChatRoomID uint   `gorm:"not null;index"`
	SenderID   uint   `gorm:"not null"`
	Type       string `gorm:"not null;default:text"`
	Content    string
	IsRead     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

type ChatDAO struct {
	db *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{
		db: db,
	}
}

// EnsureRoom returns the order's chat room, creating it on first use.
func (d *ChatDAO) EnsureRoom(ctx context.Context, orderID uint) (ChatRoom, error) {
	var room ChatRoom

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.First(&room, "order_id = ?", orderID)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		room = ChatRoom{OrderID: orderID, IsActive: true}
		return tx.Create(&room).Error
	})
	if err != nil {
		return ChatRoom{}, err
	}

	return room, nil
}

func (d *ChatDAO) FindRoomByOrderID(ctx context.Context, orderID uint) (ChatRoom, error) {
	var room ChatRoom

	result := d.db.WithContext(ctx).First(&room, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ChatRoom{}, ErrChatRoomNotFound
		}

		return ChatRoom{}, result.Error
	}

	return room, nil
}

func (d *ChatDAO) SaveMessage(ctx context.Context, message Message) (Message, error) {
	result := d.db.WithContext(ctx).Create(&message)
	if result.Error != nil {
		return Message{}, result.Error
	}

	return message, nil
}

func (d *ChatDAO) FindMessages(ctx context.Context, chatRoomID uint, limit, offset int) ([]Message, error) {
	var messages []Message

	result := d.db.WithContext(ctx).
		Where("chat_room_id = ?", chatRoomID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}
