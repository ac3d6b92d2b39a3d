package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
	"github.com/skillswap/skillswap-api/internal/service"
)

type fakeChatRepo struct {
	rooms    map[uint]domain.ChatRoom // keyed by order ID
	messages []domain.Message
	nextID   uint
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		rooms:  make(map[uint]domain.ChatRoom),
		nextID: 1,
	}
}

func (f *fakeChatRepo) EnsureRoom(_ context.Context, orderID uint) (domain.ChatRoom, error) {
	if room, ok := f.rooms[orderID]; ok {
		return room, nil
	}
	room := domain.ChatRoom{ID: f.nextID, OrderID: orderID, IsActive: true}
	f.nextID++
	f.rooms[orderID] = room
	return room, nil
}

func (f *fakeChatRepo) FindRoomByOrderID(_ context.Context, orderID uint) (domain.ChatRoom, error) {
	room, ok := f.rooms[orderID]
	if !ok {
		return domain.ChatRoom{}, repository.ErrChatRoomNotFound
	}
	return room, nil
}

func (f *fakeChatRepo) SaveMessage(_ context.Context, message domain.Message) (domain.Message, error) {
	message.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, message)
	return message, nil
}

func (f *fakeChatRepo) FindMessages(_ context.Context, chatRoomID uint, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.messages {
		if m.ChatRoomID == chatRoomID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeChatOrderRepo struct {
	orders map[uint]domain.Order
}

func (f *fakeChatOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return order, nil
}

func newChatService() (*service.ChatService, *fakeChatRepo) {
	repo := newFakeChatRepo()
	orders := &fakeChatOrderRepo{orders: map[uint]domain.Order{
		10: {ID: 10, BuyerID: 1, SellerID: 2, SkillID: 7, Status: domain.OrderAccepted},
	}}
	return service.NewChatService(repo, orders, nil), repo
}

func TestChatService_GetRoom(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatService()

	t.Run("room is created on first access and reused after", func(t *testing.T) {
		room1, _, err := svc.GetRoom(ctx, 10, 1)
		require.NoError(t, err)

		room2, _, err := svc.GetRoom(ctx, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, room1.ID, room2.ID)
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		_, _, err := svc.GetRoom(ctx, 10, 42)
		assert.ErrorIs(t, err, service.ErrNotOrderParticipant)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, _, err := svc.GetRoom(ctx, 99, 1)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("participants can exchange messages", func(t *testing.T) {
		svc, repo := newChatService()

		sent, err := svc.SendMessage(ctx, 10, 1, domain.MessageText, "hello")
		require.NoError(t, err)
		assert.Equal(t, uint(1), sent.SenderID)
		assert.Equal(t, "hello", sent.Content)
		assert.Len(t, repo.messages, 1)

		messages, err := svc.GetMessages(ctx, 10, 2, 20, 0)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "hello", messages[0].Content)
	})

	t.Run("outsiders cannot send", func(t *testing.T) {
		svc, repo := newChatService()

		_, err := svc.SendMessage(ctx, 10, 42, domain.MessageText, "let me in")
		assert.ErrorIs(t, err, service.ErrNotOrderParticipant)
		assert.Empty(t, repo.messages)
	})
}
