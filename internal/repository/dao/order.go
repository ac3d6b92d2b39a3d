package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillswap/skillswap-api/internal/domain"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrSkillNotActive = errors.New("skill is not active")
)

type Order struct {
	ID       uint `gorm:"primaryKey"`
	BuyerID  uint `gorm:"not null;index:idx_orders_buyer_status"`
	SellerID uint `gorm:"not null;index:idx_orders_seller_status"`
	SkillID  uint `gorm:"not null"`

	PointsAmount int `gorm:"not null"`
	PlatformFee  int `gorm:"not null"`
	TotalPoints  int `gorm:"not null"`

	Status        string `gorm:"not null;index;index:idx_orders_buyer_status;index:idx_orders_seller_status"`
	Requirements  string
	DeliveryNotes string

	CreatedAt   time.Time `gorm:"not null;index"`
	AcceptedAt  *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	ExpectedDelivery *time.Time
	ActualDelivery   *time.Time
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

// CreateWithEscrow persists a pending order and debits the buyer's escrow
// in one transaction: either the order row, the ledger row and the balance
// move all commit, or none do. An inactive skill or an underfunded buyer
// aborts the whole creation.
func (d *OrderDAO) CreateWithEscrow(ctx context.Context, order Order) (Order, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var skill Skill
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&skill, order.SkillID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSkillNotFound
			}
			return err
		}
		if skill.Status != string(domain.SkillActive) {
			return ErrSkillNotActive
		}

		order.Status = string(domain.OrderPending)
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		_, err := postLocked(tx, PointsTransaction{
			UserID:      order.BuyerID,
			Type:        string(domain.TransactionSpent),
			Amount:      -order.TotalPoints,
			OrderID:     &order.ID,
			SkillID:     &order.SkillID,
			Description: fmt.Sprintf("Escrow for order #%d", order.ID),
		})
		if err != nil {
			return err
		}

		return tx.Model(&skill).UpdateColumn("total_orders", gorm.Expr("total_orders + 1")).Error
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

// Transition locks the order row, re-checks the requested action against
// the status under the lock, applies the status and timestamps, and issues
// the transition's ledger posting in the same transaction. Two concurrent
// calls serialize on the row lock; the loser re-reads a status the table
// no longer permits and fails with domain.ErrInvalidTransition.
func (d *OrderDAO) Transition(ctx context.Context, orderID uint, action domain.OrderAction) (Order, error) {
	var order Order

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		next, err := domain.NextStatus(domain.OrderStatus(order.Status), action)
		if err != nil {
			return err
		}

		now := time.Now()
		order.Status = string(next)
		updates := map[string]interface{}{"status": order.Status}
		switch next {
		case domain.OrderAccepted:
			order.AcceptedAt = &now
			updates["accepted_at"] = &now
		case domain.OrderInProgress:
			order.StartedAt = &now
			updates["started_at"] = &now
		case domain.OrderCompleted:
			order.CompletedAt = &now
			order.ActualDelivery = &now
			updates["completed_at"] = &now
			updates["actual_delivery"] = &now
		case domain.OrderCancelled:
			order.CancelledAt = &now
			updates["cancelled_at"] = &now
		}

		if err := tx.Model(&Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}

		switch next {
		case domain.OrderCompleted:
			// Seller earns the listed price; the platform fee stays
			// retained from the buyer's original escrow debit.
			_, err = postLocked(tx, PointsTransaction{
				UserID:      order.SellerID,
				Type:        string(domain.TransactionEarned),
				Amount:      order.PointsAmount,
				OrderID:     &order.ID,
				SkillID:     &order.SkillID,
				Description: fmt.Sprintf("Earnings for order #%d", order.ID),
			})
		case domain.OrderCancelled:
			// Reverse the escrow in full.
			_, err = postLocked(tx, PointsTransaction{
				UserID:      order.BuyerID,
				Type:        string(domain.TransactionRefund),
				Amount:      order.TotalPoints,
				OrderID:     &order.ID,
				SkillID:     &order.SkillID,
				Description: fmt.Sprintf("Refund for cancelled order #%d", order.ID),
			})
		}

		return err
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

// FindByParty returns the orders where the user is buyer or seller,
// newest first.
func (d *OrderDAO) FindByParty(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order

	result := d.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}
