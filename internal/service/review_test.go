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

// fakeReviewRepo enforces the same eligibility rules the real DAO checks
// under the order row lock.
type fakeReviewRepo struct {
	orders  map[uint]domain.Order
	reviews map[uint]domain.Review // keyed by order ID
	nextID  uint
}

func newFakeReviewRepo(orders map[uint]domain.Order) *fakeReviewRepo {
	return &fakeReviewRepo{
		orders:  orders,
		reviews: make(map[uint]domain.Review),
		nextID:  1,
	}
}

func (f *fakeReviewRepo) CreateForOrder(_ context.Context, review domain.Review) (domain.Review, error) {
	order, ok := f.orders[review.OrderID]
	if !ok {
		return domain.Review{}, repository.ErrOrderNotFound
	}
	if order.Status != domain.OrderCompleted {
		return domain.Review{}, domain.ErrReviewNotAllowed
	}
	if review.ReviewerID != order.BuyerID {
		return domain.Review{}, domain.ErrReviewNotAllowed
	}
	if _, exists := f.reviews[review.OrderID]; exists {
		return domain.Review{}, domain.ErrReviewNotAllowed
	}
	review.ID = f.nextID
	f.nextID++
	review.RevieweeID = order.SellerID
	review.SkillID = order.SkillID
	f.reviews[review.OrderID] = review
	return review, nil
}

func (f *fakeReviewRepo) FindBySkillID(_ context.Context, skillID uint, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.SkillID == skillID && r.IsPublic {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByOrderID(_ context.Context, orderID uint) (domain.Review, error) {
	review, ok := f.reviews[orderID]
	if !ok {
		return domain.Review{}, repository.ErrReviewNotFound
	}
	return review, nil
}

type fakeStatsRecalc struct {
	skillIDs []uint
}

func (f *fakeStatsRecalc) UpdateRatingStats(_ context.Context, id uint) error {
	f.skillIDs = append(f.skillIDs, id)
	return nil
}

type fakeUserStatsRecalc struct {
	userIDs []uint
}

func (f *fakeUserStatsRecalc) UpdateRatingStats(_ context.Context, id uint) error {
	f.userIDs = append(f.userIDs, id)
	return nil
}

func completedOrders() map[uint]domain.Order {
	return map[uint]domain.Order{
		10: {ID: 10, BuyerID: 1, SellerID: 2, SkillID: 7, Status: domain.OrderCompleted},
		11: {ID: 11, BuyerID: 1, SellerID: 2, SkillID: 7, Status: domain.OrderInProgress},
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer reviews a completed order and stats recalculate", func(t *testing.T) {
		skillStats := &fakeStatsRecalc{}
		userStats := &fakeUserStatsRecalc{}
		svc := service.NewReviewService(newFakeReviewRepo(completedOrders()), skillStats, userStats, nil)

		review, err := svc.CreateReview(ctx, domain.Review{
			OrderID:    10,
			ReviewerID: 1,
			Rating:     5,
			Comment:    "great session",
			IsPublic:   true,
		})
		require.NoError(t, err)

		assert.Equal(t, uint(2), review.RevieweeID)
		assert.Equal(t, uint(7), review.SkillID)
		assert.Equal(t, []uint{7}, skillStats.skillIDs)
		assert.Equal(t, []uint{2}, userStats.userIDs)
	})

	t.Run("order not completed", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepo(completedOrders()), &fakeStatsRecalc{}, &fakeUserStatsRecalc{}, nil)

		_, err := svc.CreateReview(ctx, domain.Review{OrderID: 11, ReviewerID: 1, Rating: 4})
		assert.ErrorIs(t, err, service.ErrReviewNotAllowed)
	})

	t.Run("only the buyer may review", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepo(completedOrders()), &fakeStatsRecalc{}, &fakeUserStatsRecalc{}, nil)

		_, err := svc.CreateReview(ctx, domain.Review{OrderID: 10, ReviewerID: 2, Rating: 4})
		assert.ErrorIs(t, err, service.ErrReviewNotAllowed)
	})

	t.Run("one review per order", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepo(completedOrders()), &fakeStatsRecalc{}, &fakeUserStatsRecalc{}, nil)

		_, err := svc.CreateReview(ctx, domain.Review{OrderID: 10, ReviewerID: 1, Rating: 5})
		require.NoError(t, err)

		_, err = svc.CreateReview(ctx, domain.Review{OrderID: 10, ReviewerID: 1, Rating: 3})
		assert.ErrorIs(t, err, service.ErrReviewNotAllowed)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepo(completedOrders()), &fakeStatsRecalc{}, &fakeUserStatsRecalc{}, nil)

		_, err := svc.CreateReview(ctx, domain.Review{OrderID: 99, ReviewerID: 1, Rating: 5})
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})
}
