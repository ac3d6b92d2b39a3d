package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrReviewNotAllowed = domain.ErrReviewNotAllowed
	ErrReviewNotFound   = repository.ErrReviewNotFound
)

type ReviewRepository interface {
	CreateForOrder(ctx context.Context, review domain.Review) (domain.Review, error)
	FindBySkillID(ctx context.Context, skillID uint, limit, offset int) ([]domain.Review, error)
	FindByOrderID(ctx context.Context, orderID uint) (domain.Review, error)
}

type ReviewSkillRepository interface {
	UpdateRatingStats(ctx context.Context, skillID uint) error
}

type ReviewUserRepository interface {
	UpdateRatingStats(ctx context.Context, userID uint) error
}

type ReviewService struct {
	repo      ReviewRepository
	skillRepo ReviewSkillRepository
	userRepo  ReviewUserRepository
	notifier  Notifier
}

func NewReviewService(repo ReviewRepository, skillRepo ReviewSkillRepository, userRepo ReviewUserRepository, notifier Notifier) *ReviewService {
	return &ReviewService{
		repo:      repo,
		skillRepo: skillRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// CreateReview records the buyer's review of a completed order. Eligibility
// (completed status, reviewer is the buyer, no prior review) is enforced
// under the order row lock; anything else fails with ErrReviewNotAllowed.
// Rating aggregates are recalculated afterwards; a failed recalculation is
// logged, never surfaced, since the next review repairs it.
func (s *ReviewService) CreateReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	created, err := s.repo.CreateForOrder(ctx, review)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReviewNotAllowed),
			errors.Is(err, repository.ErrOrderNotFound):
			return domain.Review{}, err
		}

		return domain.Review{}, fmt.Errorf("s.repo.CreateForOrder -> %w", err)
	}

	if err := s.skillRepo.UpdateRatingStats(ctx, created.SkillID); err != nil {
		zap.L().Error("failed to update skill rating stats",
			zap.Uint("skill_id", created.SkillID),
			zap.Error(err))
	}
	if err := s.userRepo.UpdateRatingStats(ctx, created.RevieweeID); err != nil {
		zap.L().Error("failed to update user rating stats",
			zap.Uint("user_id", created.RevieweeID),
			zap.Error(err))
	}

	dispatch(s.notifier, domain.Notification{
		UserID:  created.RevieweeID,
		Type:    domain.NotifyReviewReceived,
		Title:   "New review received",
		Message: fmt.Sprintf("You received a %d-star review.", created.Rating),
		OrderID: &created.OrderID,
		SkillID: &created.SkillID,
	})

	return created, nil
}

func (s *ReviewService) GetSkillReviews(ctx context.Context, skillID uint, limit, offset int) ([]domain.Review, error) {
	reviews, err := s.repo.FindBySkillID(ctx, skillID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySkillID -> %w", err)
	}

	return reviews, nil
}

func (s *ReviewService) GetOrderReview(ctx context.Context, orderID uint) (domain.Review, error) {
	review, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domain.Review{}, ErrReviewNotFound
		}

		return domain.Review{}, fmt.Errorf("s.repo.FindByOrderID -> %w", err)
	}

	return review, nil
}
