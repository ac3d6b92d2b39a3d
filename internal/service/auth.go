package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthLedgerRepository interface {
	Post(ctx context.Context, txn domain.PointsTransaction) (domain.PointsTransaction, error)
}

type AuthService struct {
	repo        AuthUserRepository
	ledger      AuthLedgerRepository
	signupBonus int
}

func NewAuthService(repo AuthUserRepository, ledger AuthLedgerRepository, signupBonus int) *AuthService {
	return &AuthService{
		repo:        repo,
		ledger:      ledger,
		signupBonus: signupBonus,
	}
}

// Signup creates the account and posts the welcome bonus through the
// ledger, so the opening balance has a transaction explaining it. A
// failed bonus posting is logged but does not fail the signup.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if s.signupBonus > 0 {
		txn, err := s.ledger.Post(ctx, domain.PointsTransaction{
			UserID:      created.ID,
			Type:        domain.TransactionBonus,
			Amount:      s.signupBonus,
			Description: "Welcome bonus",
		})
		if err != nil {
			zap.L().Error("failed to post signup bonus",
				zap.Uint("user_id", created.ID),
				zap.Error(err))
		} else {
			created.PointsBalance = txn.BalanceAfter
		}
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}
