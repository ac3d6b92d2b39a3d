package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdateRatingStats(ctx context.Context, userID uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:                 u.ID,
		Email:              u.Email,
		Password:           u.Password,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Bio:                u.Bio,
		Location:           u.Location,
		PointsBalance:      u.PointsBalance,
		TotalEarnedPoints:  u.TotalEarnedPoints,
		TotalSpentPoints:   u.TotalSpentPoints,
		Rating:             u.Rating,
		TotalReviews:       u.TotalReviews,
		PreferredLanguage:  u.PreferredLanguage,
		EmailNotifications: u.EmailNotifications,
		PushNotifications:  u.PushNotifications,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:                 u.ID,
		Email:              u.Email,
		Password:           u.Password,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Bio:                u.Bio,
		Location:           u.Location,
		PointsBalance:      u.PointsBalance,
		TotalEarnedPoints:  u.TotalEarnedPoints,
		TotalSpentPoints:   u.TotalSpentPoints,
		Rating:             u.Rating,
		TotalReviews:       u.TotalReviews,
		PreferredLanguage:  u.PreferredLanguage,
		EmailNotifications: u.EmailNotifications,
		PushNotifications:  u.PushNotifications,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		if err == dao.ErrUserEmailExists {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrUserNotFound {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		if err == dao.ErrUserNotFound {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) UpdateRatingStats(ctx context.Context, userID uint) error {
	if err := r.dao.UpdateRatingStats(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.UpdateRatingStats -> %w", err)
	}

	return nil
}
