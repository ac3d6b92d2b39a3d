package domain

import "time"

type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionEarned   TransactionType = "earned"
	TransactionSpent    TransactionType = "spent"
	TransactionRefund   TransactionType = "refund"
	TransactionBonus    TransactionType = "bonus"
	TransactionPenalty  TransactionType = "penalty"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// PointsTransaction is one immutable ledger row. Amount is signed:
// positive credits, negative debits. Completed rows are never mutated;
// corrections are issued as new compensating postings.
type PointsTransaction struct {
	ID     uint            `json:"id"`
	UserID uint            `json:"user_id"`
	Type   TransactionType `json:"transaction_type"`
	Amount int             `json:"amount"`

	Status TransactionStatus `json:"status"`

	SkillID *uint `json:"skill_id,omitempty"`
	OrderID *uint `json:"order_id,omitempty"`

	Description string `json:"description,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`

	BalanceBefore int `json:"balance_before"`
	BalanceAfter  int `json:"balance_after"`

	CreatedAt time.Time `json:"created_at"`
}

// PointsPackage is a purchasable top-up bundle.
type PointsPackage struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Points             int       `json:"points"`
	Price              float64   `json:"price"`
	Currency           string    `json:"currency"`
	DiscountPercentage int       `json:"discount_percentage"`
	IsPopular          bool      `json:"is_popular"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

// DiscountedPrice applies the package discount, if any.
func (p *PointsPackage) DiscountedPrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price * (1 - float64(p.DiscountPercentage)/100)
	}
	return p.Price
}
