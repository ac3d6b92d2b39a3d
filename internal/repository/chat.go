package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var ErrChatRoomNotFound = dao.ErrChatRoomNotFound

type ChatDAO interface {
	EnsureRoom(ctx context.Context, orderID uint) (dao.ChatRoom, error)
	FindRoomByOrderID(ctx context.Context, orderID uint) (dao.ChatRoom, error)
	SaveMessage(ctx context.Context, message dao.Message) (dao.Message, error)
	FindMessages(ctx context.Context, chatRoomID uint, limit, offset int) ([]dao.Message, error)
}

type ChatRepository struct {
	dao ChatDAO
}

func NewChatRepository(dao ChatDAO) *ChatRepository {
	return &ChatRepository{
		dao: dao,
	}
}

func (r *ChatRepository) roomDaoToDomain(room dao.ChatRoom) domain.ChatRoom {
	return domain.ChatRoom{
		ID:        room.ID,
		OrderID:   room.OrderID,
		IsActive:  room.IsActive,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func (r *ChatRepository) messageDaoToDomain(m dao.Message) domain.Message {
	return domain.Message{
		ID:         m.ID,
		ChatRoomID: m.ChatRoomID,
		SenderID:   m.SenderID,
		Type:       domain.MessageType(m.Type),
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *ChatRepository) EnsureRoom(ctx context.Context, orderID uint) (domain.ChatRoom, error) {
	room, err := r.dao.EnsureRoom(ctx, orderID)
	if err != nil {
		return domain.ChatRoom{}, fmt.Errorf("r.dao.EnsureRoom -> %w", err)
	}

	return r.roomDaoToDomain(room), nil
}

func (r *ChatRepository) FindRoomByOrderID(ctx context.Context, orderID uint) (domain.ChatRoom, error) {
	room, err := r.dao.FindRoomByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, dao.ErrChatRoomNotFound) {
			return domain.ChatRoom{}, dao.ErrChatRoomNotFound
		}

		return domain.ChatRoom{}, fmt.Errorf("r.dao.FindRoomByOrderID -> %w", err)
	}

	return r.roomDaoToDomain(room), nil
}

func (r *ChatRepository) SaveMessage(ctx context.Context, message domain.Message) (domain.Message, error) {
	saved, err := r.dao.SaveMessage(ctx, dao.Message{
		ChatRoomID: message.ChatRoomID,
		SenderID:   message.SenderID,
		Type:       string(message.Type),
		Content:    message.Content,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.SaveMessage -> %w", err)
	}

	return r.messageDaoToDomain(saved), nil
}

func (r *ChatRepository) FindMessages(ctx context.Context, chatRoomID uint, limit, offset int) ([]domain.Message, error) {
	messagesDAO, err := r.dao.FindMessages(ctx, chatRoomID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMessages -> %w", err)
	}

	messages := make([]domain.Message, len(messagesDAO))
	for i, m := range messagesDAO {
		messages[i] = r.messageDaoToDomain(m)
	}

	return messages, nil
}
