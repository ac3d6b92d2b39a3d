package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrInsufficientBalance = dao.ErrInsufficientBalance
	ErrInvalidAmount       = dao.ErrInvalidAmount
)

type LedgerDAO interface {
	Post(ctx context.Context, txn dao.PointsTransaction) (dao.PointsTransaction, error)
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]dao.PointsTransaction, error)
	SumCompleted(ctx context.Context, userID uint) (int, error)
}

type LedgerRepository struct {
	dao LedgerDAO
}

func NewLedgerRepository(dao LedgerDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

func transactionDaoToDomain(t dao.PointsTransaction) domain.PointsTransaction {
	return domain.PointsTransaction{
		ID:            t.ID,
		UserID:        t.UserID,
		Type:          domain.TransactionType(t.Type),
		Amount:        t.Amount,
		Status:        domain.TransactionStatus(t.Status),
		SkillID:       t.SkillID,
		OrderID:       t.OrderID,
		Description:   t.Description,
		ReferenceID:   t.ReferenceID,
		PaymentID:     t.PaymentID,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		CreatedAt:     t.CreatedAt,
	}
}

// Post appends one ledger posting for the account. The amount is signed;
// debits that would overdraw fail with ErrInsufficientBalance and leave
// nothing behind.
func (r *LedgerRepository) Post(ctx context.Context, txn domain.PointsTransaction) (domain.PointsTransaction, error) {
	posted, err := r.dao.Post(ctx, dao.PointsTransaction{
		UserID:      txn.UserID,
		Type:        string(txn.Type),
		Amount:      txn.Amount,
		SkillID:     txn.SkillID,
		OrderID:     txn.OrderID,
		Description: txn.Description,
		ReferenceID: txn.ReferenceID,
		PaymentID:   txn.PaymentID,
	})
	if err != nil {
		return domain.PointsTransaction{}, fmt.Errorf("r.dao.Post -> %w", err)
	}

	return transactionDaoToDomain(posted), nil
}

func (r *LedgerRepository) FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.PointsTransaction, error) {
	txnsDAO, err := r.dao.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	txns := make([]domain.PointsTransaction, len(txnsDAO))
	for i, t := range txnsDAO {
		txns[i] = transactionDaoToDomain(t)
	}

	return txns, nil
}

// SumCompleted replays the account's completed postings. The result must
// always equal the account's materialized balance.
func (r *LedgerRepository) SumCompleted(ctx context.Context, userID uint) (int, error) {
	sum, err := r.dao.SumCompleted(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumCompleted -> %w", err)
	}

	return sum, nil
}
