package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

// ErrBalanceMismatch signals that the materialized balance has drifted
// from the replayed transaction log.
var ErrBalanceMismatch = errors.New("points balance does not match transaction log")

// LedgerRepository is the read side of the ledger. Writes go through the
// order, payment and auth flows only.
type LedgerRepository interface {
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.PointsTransaction, error)
	SumCompleted(ctx context.Context, userID uint) (int, error)
}

type PointsUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type PointsService struct {
	repo     LedgerRepository
	userRepo PointsUserRepository
}

func NewPointsService(repo LedgerRepository, userRepo PointsUserRepository) *PointsService {
	return &PointsService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *PointsService) GetTransactions(ctx context.Context, userID uint, limit, offset int) ([]domain.PointsTransaction, error) {
	txns, err := s.repo.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return txns, nil
}

func (s *PointsService) GetBalance(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}

		return 0, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return user.PointsBalance, nil
}

// Audit replays the user's completed transactions and compares the sum
// against the materialized balance. The two must always agree; a mismatch
// means a write bypassed the ledger.
func (s *PointsService) Audit(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}

		return 0, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	sum, err := s.repo.SumCompleted(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SumCompleted -> %w", err)
	}

	if sum != user.PointsBalance {
		return sum, fmt.Errorf("%w: balance=%d, log sum=%d", ErrBalanceMismatch, user.PointsBalance, sum)
	}

	return sum, nil
}
