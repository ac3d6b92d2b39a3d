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

type fakePaymentRepo struct {
	payments  map[string]domain.Payment
	packages  map[uint]domain.PointsPackage
	completed []string
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[string]domain.Payment),
		packages: map[uint]domain.PointsPackage{
			1: {ID: 1, Name: "Starter", Points: 100, Price: 9.99, Currency: "usd", IsActive: true},
		},
	}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	f.payments[payment.ID] = payment
	return payment, nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id string) (domain.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}
	return payment, nil
}

func (f *fakePaymentRepo) MarkFailed(_ context.Context, id, reason string) error {
	payment := f.payments[id]
	payment.Status = domain.PaymentFailed
	payment.FailureReason = reason
	f.payments[id] = payment
	return nil
}

func (f *fakePaymentRepo) Complete(_ context.Context, id string) (domain.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}
	if payment.Status != domain.PaymentCompleted {
		now := time.Now()
		payment.Status = domain.PaymentCompleted
		payment.CompletedAt = &now
		f.payments[id] = payment
		f.completed = append(f.completed, id)
	}
	return payment, nil
}

func (f *fakePaymentRepo) FindActivePackages(_ context.Context) ([]domain.PointsPackage, error) {
	var out []domain.PointsPackage
	for _, p := range f.packages {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) FindPackageByID(_ context.Context, id uint) (domain.PointsPackage, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return domain.PointsPackage{}, repository.ErrPackageNotFound
	}
	return pkg, nil
}

func TestPaymentService_GetPackages(t *testing.T) {
	svc := service.NewPaymentService(newFakePaymentRepo(), nil, "sk_test")

	packages, err := svc.GetPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "Starter", packages[0].Name)
}

func TestPaymentService_ConfirmPayment_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakePaymentRepo()
	svc := service.NewPaymentService(repo, nil, "sk_test")

	repo.payments["pay-1"] = domain.Payment{
		ID:              "pay-1",
		UserID:          1,
		PointsPackageID: 1,
		Status:          domain.PaymentCompleted,
	}

	// An already completed payment returns as-is, with no second gateway
	// call and no second ledger posting.
	payment, err := svc.ConfirmPayment(ctx, 1, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, payment.Status)
	assert.Empty(t, repo.completed)
}

func TestPaymentService_GetPayment(t *testing.T) {
	ctx := context.Background()
	repo := newFakePaymentRepo()
	svc := service.NewPaymentService(repo, nil, "sk_test")

	repo.payments["pay-1"] = domain.Payment{ID: "pay-1", UserID: 1}

	t.Run("owner reads their payment", func(t *testing.T) {
		payment, err := svc.GetPayment(ctx, 1, "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "pay-1", payment.ID)
	})

	t.Run("someone else's payment is not found", func(t *testing.T) {
		_, err := svc.GetPayment(ctx, 2, "pay-1")
		assert.ErrorIs(t, err, service.ErrPaymentNotFound)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := svc.GetPayment(ctx, 1, "missing")
		assert.ErrorIs(t, err, service.ErrPaymentNotFound)
	})
}
