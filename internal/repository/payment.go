package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrPaymentNotFound = dao.ErrPaymentNotFound
	ErrPackageNotFound = dao.ErrPackageNotFound
)

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByID(ctx context.Context, id string) (dao.Payment, error)
	MarkFailed(ctx context.Context, id, reason string) error
	Complete(ctx context.Context, id string) (dao.Payment, error)
	FindActivePackages(ctx context.Context) ([]dao.PointsPackage, error)
	FindPackageByID(ctx context.Context, id uint) (dao.PointsPackage, error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) daoToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:                p.ID,
		UserID:            p.UserID,
		PointsPackageID:   p.PointsPackageID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Method:            domain.PaymentMethod(p.Method),
		Status:            domain.PaymentStatus(p.Status),
		ExternalPaymentID: p.ExternalPaymentID,
		FailureReason:     p.FailureReason,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		CompletedAt:       p.CompletedAt,
	}
}

func (r *PaymentRepository) packageDaoToDomain(p dao.PointsPackage) domain.PointsPackage {
	return domain.PointsPackage{
		ID:                 p.ID,
		Name:               p.Name,
		Points:             p.Points,
		Price:              p.Price,
		Currency:           p.Currency,
		DiscountPercentage: p.DiscountPercentage,
		IsPopular:          p.IsPopular,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.Insert(ctx, dao.Payment{
		ID:                payment.ID,
		UserID:            payment.UserID,
		PointsPackageID:   payment.PointsPackageID,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		Method:            string(payment.Method),
		Status:            string(payment.Status),
		ExternalPaymentID: payment.ExternalPaymentID,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (domain.Payment, error) {
	payment, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrPaymentNotFound {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(payment), nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, id, reason string) error {
	if err := r.dao.MarkFailed(ctx, id, reason); err != nil {
		return fmt.Errorf("r.dao.MarkFailed -> %w", err)
	}

	return nil
}

// Complete finalizes the payment and posts the purchased points atomically;
// repeat calls are no-ops returning the completed payment.
func (r *PaymentRepository) Complete(ctx context.Context, id string) (domain.Payment, error) {
	payment, err := r.dao.Complete(ctx, id)
	if err != nil {
		switch err {
		case dao.ErrPaymentNotFound, dao.ErrPackageNotFound:
			return domain.Payment{}, err
		}

		return domain.Payment{}, fmt.Errorf("r.dao.Complete -> %w", err)
	}

	return r.daoToDomain(payment), nil
}

func (r *PaymentRepository) FindActivePackages(ctx context.Context) ([]domain.PointsPackage, error) {
	packagesDAO, err := r.dao.FindActivePackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActivePackages -> %w", err)
	}

	packages := make([]domain.PointsPackage, len(packagesDAO))
	for i, p := range packagesDAO {
		packages[i] = r.packageDaoToDomain(p)
	}

	return packages, nil
}

func (r *PaymentRepository) FindPackageByID(ctx context.Context, id uint) (domain.PointsPackage, error) {
	pkg, err := r.dao.FindPackageByID(ctx, id)
	if err != nil {
		if err == dao.ErrPackageNotFound {
			return domain.PointsPackage{}, ErrPackageNotFound
		}

		return domain.PointsPackage{}, fmt.Errorf("r.dao.FindPackageByID -> %w", err)
	}

	return r.packageDaoToDomain(pkg), nil
}
