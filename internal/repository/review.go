package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var ErrReviewNotFound = dao.ErrReviewNotFound

type ReviewDAO interface {
	InsertForOrder(ctx context.Context, review dao.Review) (dao.Review, error)
	FindBySkillID(ctx context.Context, skillID uint, limit, offset int) ([]dao.Review, error)
	FindByOrderID(ctx context.Context, orderID uint) (dao.Review, error)
}

type ReviewRepository struct {
	dao ReviewDAO
}

func NewReviewRepository(dao ReviewDAO) *ReviewRepository {
	return &ReviewRepository{
		dao: dao,
	}
}

func (r *ReviewRepository) daoToDomain(rev dao.Review) domain.Review {
	return domain.Review{
		ID:                  rev.ID,
		ReviewerID:          rev.ReviewerID,
		RevieweeID:          rev.RevieweeID,
		SkillID:             rev.SkillID,
		OrderID:             rev.OrderID,
		Rating:              rev.Rating,
		Comment:             rev.Comment,
		CommunicationRating: rev.CommunicationRating,
		QualityRating:       rev.QualityRating,
		DeliveryRating:      rev.DeliveryRating,
		IsPublic:            rev.IsPublic,
		CreatedAt:           rev.CreatedAt,
		UpdatedAt:           rev.UpdatedAt,
	}
}

// CreateForOrder creates the review with eligibility re-checked under the
// order row lock.
func (r *ReviewRepository) CreateForOrder(ctx context.Context, review domain.Review) (domain.Review, error) {
	created, err := r.dao.InsertForOrder(ctx, dao.Review{
		ReviewerID:          review.ReviewerID,
		OrderID:             review.OrderID,
		Rating:              review.Rating,
		Comment:             review.Comment,
		CommunicationRating: review.CommunicationRating,
		QualityRating:       review.QualityRating,
		DeliveryRating:      review.DeliveryRating,
		IsPublic:            review.IsPublic,
	})
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotAllowed) || errors.Is(err, dao.ErrOrderNotFound) {
			return domain.Review{}, err
		}

		return domain.Review{}, fmt.Errorf("r.dao.InsertForOrder -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReviewRepository) FindBySkillID(ctx context.Context, skillID uint, limit, offset int) ([]domain.Review, error) {
	reviewsDAO, err := r.dao.FindBySkillID(ctx, skillID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySkillID -> %w", err)
	}

	reviews := make([]domain.Review, len(reviewsDAO))
	for i, rev := range reviewsDAO {
		reviews[i] = r.daoToDomain(rev)
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByOrderID(ctx context.Context, orderID uint) (domain.Review, error) {
	review, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		if err == dao.ErrReviewNotFound {
			return domain.Review{}, ErrReviewNotFound
		}

		return domain.Review{}, fmt.Errorf("r.dao.FindByOrderID -> %w", err)
	}

	return r.daoToDomain(review), nil
}
