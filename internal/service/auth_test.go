package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
	"github.com/skillswap/skillswap-api/internal/service"
)

type fakeAuthUserRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{
		byEmail: make(map[string]domain.User),
		nextID:  1,
	}
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeBonusLedger struct {
	posted  []domain.PointsTransaction
	postErr error
}

func (f *fakeBonusLedger) Post(_ context.Context, txn domain.PointsTransaction) (domain.PointsTransaction, error) {
	if f.postErr != nil {
		return domain.PointsTransaction{}, f.postErr
	}
	txn.BalanceBefore = 0
	txn.BalanceAfter = txn.Amount
	f.posted = append(f.posted, txn)
	return txn, nil
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and posts the welcome bonus", func(t *testing.T) {
		repo := newFakeAuthUserRepo()
		ledger := &fakeBonusLedger{}
		svc := service.NewAuthService(repo, ledger, 100)

		created, err := svc.Signup(ctx, domain.User{
			Email:     "alice@example.com",
			Password:  "secret123",
			FirstName: "Alice",
			LastName:  "Liddell",
		})
		require.NoError(t, err)

		stored := repo.byEmail["alice@example.com"]
		assert.NotEqual(t, "secret123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

		require.Len(t, ledger.posted, 1)
		assert.Equal(t, domain.TransactionBonus, ledger.posted[0].Type)
		assert.Equal(t, 100, ledger.posted[0].Amount)
		assert.Equal(t, created.ID, ledger.posted[0].UserID)
		assert.Equal(t, 100, created.PointsBalance)
	})

	t.Run("a failed bonus does not fail the signup", func(t *testing.T) {
		repo := newFakeAuthUserRepo()
		ledger := &fakeBonusLedger{postErr: errors.New("ledger down")}
		svc := service.NewAuthService(repo, ledger, 100)

		created, err := svc.Signup(ctx, domain.User{Email: "bob@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Zero(t, created.PointsBalance)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeAuthUserRepo()
		svc := service.NewAuthService(repo, &fakeBonusLedger{}, 0)

		_, err := svc.Signup(ctx, domain.User{Email: "carol@example.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, domain.User{Email: "carol@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, service.ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthUserRepo()
	svc := service.NewAuthService(repo, &fakeBonusLedger{}, 0)

	_, err := svc.Signup(ctx, domain.User{Email: "dave@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "dave@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "dave@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "dave@example.com", "nope12345")
		assert.ErrorIs(t, err, service.ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "eve@example.com", "secret123")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
