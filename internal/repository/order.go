package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrOrderNotFound  = dao.ErrOrderNotFound
	ErrSkillNotActive = dao.ErrSkillNotActive
)

type OrderDAO interface {
	CreateWithEscrow(ctx context.Context, order dao.Order) (dao.Order, error)
	Transition(ctx context.Context, orderID uint, action domain.OrderAction) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	FindByParty(ctx context.Context, userID uint) ([]dao.Order, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) domainToDao(o domain.Order) dao.Order {
	return dao.Order{
		ID:               o.ID,
		BuyerID:          o.BuyerID,
		SellerID:         o.SellerID,
		SkillID:          o.SkillID,
		PointsAmount:     o.PointsAmount,
		PlatformFee:      o.PlatformFee,
		TotalPoints:      o.TotalPoints,
		Status:           string(o.Status),
		Requirements:     o.Requirements,
		DeliveryNotes:    o.DeliveryNotes,
		CreatedAt:        o.CreatedAt,
		AcceptedAt:       o.AcceptedAt,
		StartedAt:        o.StartedAt,
		CompletedAt:      o.CompletedAt,
		CancelledAt:      o.CancelledAt,
		ExpectedDelivery: o.ExpectedDelivery,
		ActualDelivery:   o.ActualDelivery,
	}
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:               o.ID,
		BuyerID:          o.BuyerID,
		SellerID:         o.SellerID,
		SkillID:          o.SkillID,
		PointsAmount:     o.PointsAmount,
		PlatformFee:      o.PlatformFee,
		TotalPoints:      o.TotalPoints,
		Status:           domain.OrderStatus(o.Status),
		Requirements:     o.Requirements,
		DeliveryNotes:    o.DeliveryNotes,
		CreatedAt:        o.CreatedAt,
		AcceptedAt:       o.AcceptedAt,
		StartedAt:        o.StartedAt,
		CompletedAt:      o.CompletedAt,
		CancelledAt:      o.CancelledAt,
		ExpectedDelivery: o.ExpectedDelivery,
		ActualDelivery:   o.ActualDelivery,
	}
}

// CreateWithEscrow persists the pending order and the buyer's escrow debit
// as one atomic unit.
func (r *OrderRepository) CreateWithEscrow(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.CreateWithEscrow(ctx, r.domainToDao(order))
	if err != nil {
		switch err {
		case dao.ErrSkillNotFound, dao.ErrSkillNotActive, dao.ErrInsufficientBalance, dao.ErrUserNotFound:
			return domain.Order{}, err
		}

		return domain.Order{}, fmt.Errorf("r.dao.CreateWithEscrow -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// Transition applies one lifecycle action and its ledger effect atomically.
func (r *OrderRepository) Transition(ctx context.Context, orderID uint, action domain.OrderAction) (domain.Order, error) {
	order, err := r.dao.Transition(ctx, orderID, action)
	if err != nil {
		return domain.Order{}, err
	}

	return r.daoToDomain(order), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	order, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrOrderNotFound {
			return domain.Order{}, ErrOrderNotFound
		}

		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(order), nil
}

func (r *OrderRepository) FindByParty(ctx context.Context, userID uint) ([]domain.Order, error) {
	ordersDAO, err := r.dao.FindByParty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParty -> %w", err)
	}

	orders := make([]domain.Order, len(ordersDAO))
	for i, o := range ordersDAO {
		orders[i] = r.daoToDomain(o)
	}

	return orders, nil
}
