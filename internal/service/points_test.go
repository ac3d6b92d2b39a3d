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

// fakeLedgerRepo keeps an in-memory log and a running balance per user,
// mirroring the invariant that the balance is a view over the log.
type fakeLedgerRepo struct {
	entries  []domain.PointsTransaction
	balances map[uint]int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{balances: make(map[uint]int)}
}

// seed appends a completed posting, the way order transitions and payments do.
func (f *fakeLedgerRepo) seed(userID uint, txnType domain.TransactionType, amount int) {
	balance := f.balances[userID]
	f.balances[userID] = balance + amount
	f.entries = append(f.entries, domain.PointsTransaction{
		UserID:        userID,
		Type:          txnType,
		Amount:        amount,
		Status:        domain.TransactionCompleted,
		BalanceBefore: balance,
		BalanceAfter:  balance + amount,
	})
}

func (f *fakeLedgerRepo) FindByUserID(_ context.Context, userID uint, limit, offset int) ([]domain.PointsTransaction, error) {
	var out []domain.PointsTransaction
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SumCompleted(_ context.Context, userID uint) (int, error) {
	sum := 0
	for _, e := range f.entries {
		if e.UserID == userID && e.Status == domain.TransactionCompleted {
			sum += e.Amount
		}
	}
	return sum, nil
}

type fakePointsUserRepo struct {
	ledger *fakeLedgerRepo
	drift  int // injected mismatch between balance and log
}

func (f *fakePointsUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	if _, ok := f.ledger.balances[id]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return domain.User{ID: id, PointsBalance: f.ledger.balances[id] + f.drift}, nil
}

func TestPointsService_GetTransactions(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedgerRepo()
	svc := service.NewPointsService(ledger, &fakePointsUserRepo{ledger: ledger})

	ledger.seed(1, domain.TransactionBonus, 100)
	ledger.seed(1, domain.TransactionSpent, -30)
	ledger.seed(2, domain.TransactionBonus, 100)

	txns, err := svc.GetTransactions(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, 100, txns[0].BalanceAfter)
	assert.Equal(t, 70, txns[1].BalanceAfter)
}

func TestPointsService_GetBalance(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedgerRepo()
	svc := service.NewPointsService(ledger, &fakePointsUserRepo{ledger: ledger})

	ledger.seed(1, domain.TransactionBonus, 100)
	ledger.seed(1, domain.TransactionSpent, -30)

	balance, err := svc.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetBalance(ctx, 999)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestPointsService_Audit(t *testing.T) {
	ctx := context.Background()

	t.Run("log sum matches the balance", func(t *testing.T) {
		ledger := newFakeLedgerRepo()
		svc := service.NewPointsService(ledger, &fakePointsUserRepo{ledger: ledger})

		ledger.seed(1, domain.TransactionBonus, 100)
		ledger.seed(1, domain.TransactionSpent, -30)

		sum, err := svc.Audit(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 70, sum)
	})

	t.Run("drift is reported as a mismatch", func(t *testing.T) {
		ledger := newFakeLedgerRepo()
		svc := service.NewPointsService(ledger, &fakePointsUserRepo{ledger: ledger, drift: 5})

		ledger.seed(1, domain.TransactionBonus, 100)

		_, err := svc.Audit(ctx, 1)
		assert.ErrorIs(t, err, service.ErrBalanceMismatch)
	})
}
