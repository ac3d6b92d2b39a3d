package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var ErrChatRoomNotFound = repository.ErrChatRoomNotFound

type ChatRepository interface {
	EnsureRoom(ctx context.Context, orderID uint) (domain.ChatRoom, error)
	FindRoomByOrderID(ctx context.Context, orderID uint) (domain.ChatRoom, error)
	SaveMessage(ctx context.Context, message domain.Message) (domain.Message, error)
	FindMessages(ctx context.Context, chatRoomID uint, limit, offset int) ([]domain.Message, error)
}

type ChatOrderRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Order, error)
}

type ChatService struct {
	repo      ChatRepository
	orderRepo ChatOrderRepository
	notifier  Notifier
}

func NewChatService(repo ChatRepository, orderRepo ChatOrderRepository, notifier Notifier) *ChatService {
	return &ChatService{
		repo:      repo,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// GetRoom returns the order's chat room, creating it on first access.
// Only the two parties of the order may enter.
func (s *ChatService) GetRoom(ctx context.Context, orderID, userID uint) (domain.ChatRoom, domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.ChatRoom{}, domain.Order{}, ErrOrderNotFound
		}

		return domain.ChatRoom{}, domain.Order{}, fmt.Errorf("s.orderRepo.FindByID -> %w", err)
	}

	if userID != order.BuyerID && userID != order.SellerID {
		return domain.ChatRoom{}, domain.Order{}, ErrNotOrderParticipant
	}

	room, err := s.repo.EnsureRoom(ctx, orderID)
	if err != nil {
		return domain.ChatRoom{}, domain.Order{}, fmt.Errorf("s.repo.EnsureRoom -> %w", err)
	}

	return room, order, nil
}

func (s *ChatService) SendMessage(ctx context.Context, orderID, senderID uint, msgType domain.MessageType, content string) (domain.Message, error) {
	room, order, err := s.GetRoom(ctx, orderID, senderID)
	if err != nil {
		return domain.Message{}, err
	}

	saved, err := s.repo.SaveMessage(ctx, domain.Message{
		ChatRoomID: room.ID,
		SenderID:   senderID,
		Type:       msgType,
		Content:    content,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.SaveMessage -> %w", err)
	}

	recipient := order.BuyerID
	if senderID == order.BuyerID {
		recipient = order.SellerID
	}
	dispatch(s.notifier, domain.Notification{
		UserID:  recipient,
		Type:    domain.NotifyMessageReceived,
		Title:   "New message",
		Message: fmt.Sprintf("New message on order #%d.", orderID),
		OrderID: &orderID,
	})

	return saved, nil
}

func (s *ChatService) GetMessages(ctx context.Context, orderID, userID uint, limit, offset int) ([]domain.Message, error) {
	room, _, err := s.GetRoom(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.FindMessages(ctx, room.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMessages -> %w", err)
	}

	return messages, nil
}
