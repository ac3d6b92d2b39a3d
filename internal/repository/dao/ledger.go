package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillswap/skillswap-api/internal/domain"
)

var (
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrInvalidAmount       = domain.ErrInvalidAmount
)

// PointsTransaction is an append-only ledger row. Completed rows are never
// updated or deleted; corrections arrive as new compensating postings.
type PointsTransaction struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index:idx_points_transactions_user_type"`
	Type   string `gorm:"not null;index:idx_points_transactions_user_type"`
	Amount int    `gorm:"not null"`

	Status string `gorm:"not null;index"`

	SkillID *uint
	OrderID *uint

	Description string
	ReferenceID string
	PaymentID   string

	BalanceBefore int `gorm:"not null"`
	BalanceAfter  int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

// Post appends one completed ledger row and moves the account balance in a
// single transaction. See postLocked for the invariants.
func (d *LedgerDAO) Post(ctx context.Context, txn PointsTransaction) (PointsTransaction, error) {
	var posted PointsTransaction

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		posted, err = postLocked(tx, txn)
		return err
	})
	if err != nil {
		return PointsTransaction{}, err
	}

	return posted, nil
}

// postLocked is the single write path for the ledger. It locks the account
// row, verifies the posting, snapshots balance_before/balance_after, appends
// the row and moves the balance, all inside the caller's transaction. The
// caller owns commit and rollback, so a failed posting leaves nothing behind.
func postLocked(tx *gorm.DB, txn PointsTransaction) (PointsTransaction, error) {
	if txn.Amount == 0 {
		return PointsTransaction{}, ErrInvalidAmount
	}

	var user User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, txn.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PointsTransaction{}, ErrUserNotFound
		}
		return PointsTransaction{}, err
	}

	if txn.Amount < 0 && user.PointsBalance < -txn.Amount {
		return PointsTransaction{}, ErrInsufficientBalance
	}

	txn.Status = string(domain.TransactionCompleted)
	txn.BalanceBefore = user.PointsBalance
	txn.BalanceAfter = user.PointsBalance + txn.Amount

	if err := tx.Create(&txn).Error; err != nil {
		return PointsTransaction{}, err
	}

	updates := map[string]interface{}{
		"points_balance": txn.BalanceAfter,
	}
	if txn.Amount > 0 {
		updates["total_earned_points"] = gorm.Expr("total_earned_points + ?", txn.Amount)
	} else {
		updates["total_spent_points"] = gorm.Expr("total_spent_points + ?", -txn.Amount)
	}
	if err := tx.Model(&User{}).Where("id = ?", txn.UserID).Updates(updates).Error; err != nil {
		return PointsTransaction{}, err
	}

	return txn, nil
}

func (d *LedgerDAO) FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]PointsTransaction, error) {
	var txns []PointsTransaction

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns)
	if result.Error != nil {
		return nil, result.Error
	}

	return txns, nil
}

// SumCompleted replays the completed rows for an account. Auditing uses it
// to prove the materialized balance equals the ledger-derived truth.
func (d *LedgerDAO) SumCompleted(ctx context.Context, userID uint) (int, error) {
	var sum int

	result := d.db.WithContext(ctx).
		Model(&PointsTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND status = ?", userID, string(domain.TransactionCompleted)).
		Scan(&sum)
	if result.Error != nil {
		return 0, result.Error
	}

	return sum, nil
}
