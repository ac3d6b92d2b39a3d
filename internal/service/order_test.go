package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
	"github.com/skillswap/skillswap-api/internal/service"
)

type fakeOrderRepo struct {
	orders map[uint]domain.Order
	nextID uint

	createErr     error
	transitionErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uint]domain.Order),
		nextID: 1,
	}
}

func (f *fakeOrderRepo) CreateWithEscrow(_ context.Context, order domain.Order) (domain.Order, error) {
	if f.createErr != nil {
		return domain.Order{}, f.createErr
	}
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) Transition(_ context.Context, orderID uint, action domain.OrderAction) (domain.Order, error) {
	if f.transitionErr != nil {
		return domain.Order{}, f.transitionErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	if err := order.ApplyTransition(action, time.Now()); err != nil {
		return domain.Order{}, err
	}
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) FindByParty(_ context.Context, userID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.BuyerID == userID || o.SellerID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeSkillFinder struct {
	skills map[uint]domain.Skill
}

func (f *fakeSkillFinder) FindByID(_ context.Context, id uint) (domain.Skill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return domain.Skill{}, repository.ErrSkillNotFound
	}
	return skill, nil
}

func newOrderService(repo *fakeOrderRepo, skills map[uint]domain.Skill) *service.OrderService {
	return service.NewOrderService(repo, &fakeSkillFinder{skills: skills}, nil, 8)
}

func activeSkill() map[uint]domain.Skill {
	return map[uint]domain.Skill{
		7: {ID: 7, UserID: 2, PointsRequired: 100, Status: domain.SkillActive},
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending order with the fee captured", func(t *testing.T) {
		svc := newOrderService(newFakeOrderRepo(), activeSkill())

		order, err := svc.CreateOrder(ctx, 1, 7, "requirements")
		require.NoError(t, err)

		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Equal(t, 100, order.PointsAmount)
		assert.Equal(t, 8, order.PlatformFee)
		assert.Equal(t, 108, order.TotalPoints)
	})

	t.Run("rejects unknown skill", func(t *testing.T) {
		svc := newOrderService(newFakeOrderRepo(), activeSkill())

		_, err := svc.CreateOrder(ctx, 1, 99, "")
		assert.ErrorIs(t, err, service.ErrSkillNotFound)
	})

	t.Run("rejects a paused skill", func(t *testing.T) {
		skills := activeSkill()
		paused := skills[7]
		paused.Status = domain.SkillPaused
		skills[7] = paused
		svc := newOrderService(newFakeOrderRepo(), skills)

		_, err := svc.CreateOrder(ctx, 1, 7, "")
		assert.ErrorIs(t, err, service.ErrSkillNotActive)
	})

	t.Run("rejects buying your own skill", func(t *testing.T) {
		svc := newOrderService(newFakeOrderRepo(), activeSkill())

		_, err := svc.CreateOrder(ctx, 2, 7, "")
		assert.ErrorIs(t, err, service.ErrSelfOrder)
	})

	t.Run("surfaces an overdrawn balance untouched", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.createErr = repository.ErrInsufficientBalance
		svc := newOrderService(repo, activeSkill())

		_, err := svc.CreateOrder(ctx, 1, 7, "")
		assert.ErrorIs(t, err, service.ErrInsufficientBalance)
		assert.Empty(t, repo.orders)
	})
}

func TestOrderService_TransitionOrder(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.OrderService, domain.Order) {
		t.Helper()
		repo := newFakeOrderRepo()
		svc := newOrderService(repo, activeSkill())
		order, err := svc.CreateOrder(ctx, 1, 7, "")
		require.NoError(t, err)
		return svc, order
	}

	t.Run("seller accepts", func(t *testing.T) {
		svc, order := setup(t)

		updated, err := svc.TransitionOrder(ctx, order.ID, 2, domain.ActionAccept)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderAccepted, updated.Status)
	})

	t.Run("buyer cannot accept", func(t *testing.T) {
		svc, order := setup(t)

		_, err := svc.TransitionOrder(ctx, order.ID, 1, domain.ActionAccept)
		assert.ErrorIs(t, err, service.ErrActionNotAllowedForActor)
	})

	t.Run("buyer cannot complete", func(t *testing.T) {
		svc, order := setup(t)
		_, err := svc.TransitionOrder(ctx, order.ID, 2, domain.ActionAccept)
		require.NoError(t, err)
		_, err = svc.TransitionOrder(ctx, order.ID, 1, domain.ActionStart)
		require.NoError(t, err)

		_, err = svc.TransitionOrder(ctx, order.ID, 1, domain.ActionComplete)
		assert.ErrorIs(t, err, service.ErrActionNotAllowedForActor)
	})

	t.Run("outsider is rejected before any status check", func(t *testing.T) {
		svc, order := setup(t)

		_, err := svc.TransitionOrder(ctx, order.ID, 42, domain.ActionCancel)
		assert.ErrorIs(t, err, service.ErrNotOrderParticipant)
	})

	t.Run("full happy path to completed", func(t *testing.T) {
		svc, order := setup(t)

		for _, step := range []struct {
			actor  uint
			action domain.OrderAction
			want   domain.OrderStatus
		}{
			{2, domain.ActionAccept, domain.OrderAccepted},
			{1, domain.ActionStart, domain.OrderInProgress},
			{2, domain.ActionComplete, domain.OrderCompleted},
		} {
			updated, err := svc.TransitionOrder(ctx, order.ID, step.actor, step.action)
			require.NoError(t, err)
			assert.Equal(t, step.want, updated.Status)
		}
	})

	t.Run("completing twice fails with invalid transition", func(t *testing.T) {
		svc, order := setup(t)
		_, err := svc.TransitionOrder(ctx, order.ID, 2, domain.ActionAccept)
		require.NoError(t, err)
		_, err = svc.TransitionOrder(ctx, order.ID, 2, domain.ActionStart)
		require.NoError(t, err)
		_, err = svc.TransitionOrder(ctx, order.ID, 2, domain.ActionComplete)
		require.NoError(t, err)

		_, err = svc.TransitionOrder(ctx, order.ID, 2, domain.ActionComplete)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("cancelling a completed order fails", func(t *testing.T) {
		svc, order := setup(t)
		_, err := svc.TransitionOrder(ctx, order.ID, 1, domain.ActionCancel)
		require.NoError(t, err)

		_, err = svc.TransitionOrder(ctx, order.ID, 1, domain.ActionCancel)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("either party may dispute an in-progress order", func(t *testing.T) {
		svc, order := setup(t)
		_, err := svc.TransitionOrder(ctx, order.ID, 2, domain.ActionAccept)
		require.NoError(t, err)
		_, err = svc.TransitionOrder(ctx, order.ID, 2, domain.ActionStart)
		require.NoError(t, err)

		updated, err := svc.TransitionOrder(ctx, order.ID, 1, domain.ActionDispute)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderDisputed, updated.Status)

		// Disputed is parked: nothing moves it.
		_, err = svc.TransitionOrder(ctx, order.ID, 2, domain.ActionComplete)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
		_, err = svc.TransitionOrder(ctx, order.ID, 1, domain.ActionCancel)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepo()
	svc := newOrderService(repo, activeSkill())
	order, err := svc.CreateOrder(ctx, 1, 7, "")
	require.NoError(t, err)

	t.Run("buyer and seller can read", func(t *testing.T) {
		for _, userID := range []uint{1, 2} {
			got, err := svc.GetOrder(ctx, order.ID, userID)
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
		}
	})

	t.Run("outsider cannot", func(t *testing.T) {
		_, err := svc.GetOrder(ctx, order.ID, 42)
		assert.ErrorIs(t, err, service.ErrNotOrderParticipant)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := svc.GetOrder(ctx, 999, 1)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})
}
