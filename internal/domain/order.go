package domain

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderAccepted   OrderStatus = "accepted"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderDisputed   OrderStatus = "disputed"
)

type OrderAction string

const (
	ActionAccept   OrderAction = "accept"
	ActionStart    OrderAction = "start"
	ActionComplete OrderAction = "complete"
	ActionCancel   OrderAction = "cancel"
	ActionDispute  OrderAction = "dispute"
)

var (
	ErrInvalidTransition = errors.New("invalid order transition")
	ErrInvalidAmount     = errors.New("invalid points amount")
	ErrSelfOrder         = errors.New("buyer and seller must be different users")
)

// Order is one buyer/seller exchange for one listed skill. Points are
// whole numbers everywhere; the fee is computed once at creation and
// never re-derived.
type Order struct {
	ID      uint `json:"id"`
	BuyerID uint `json:"buyer_id"`
	SellerID uint `json:"seller_id"`
	SkillID uint `json:"skill_id"`

	PointsAmount int `json:"points_amount"`
	PlatformFee  int `json:"platform_fee"`
	TotalPoints  int `json:"total_points"`

	Status        OrderStatus `json:"status"`
	Requirements  string      `json:"requirements,omitempty"`
	DeliveryNotes string      `json:"delivery_notes,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
	ActualDelivery   *time.Time `json:"actual_delivery,omitempty"`
}

// PlatformFee computes floor(amount * pct / 100) in integer math.
func PlatformFee(pointsAmount, feePercentage int) int {
	return pointsAmount * feePercentage / 100
}

// NewOrder builds a pending order with the fee fixed at creation time.
func NewOrder(buyerID uint, skill Skill, feePercentage int, requirements string) (Order, error) {
	if buyerID == skill.UserID {
		return Order{}, ErrSelfOrder
	}
	if skill.PointsRequired <= 0 {
		return Order{}, ErrInvalidAmount
	}

	fee := PlatformFee(skill.PointsRequired, feePercentage)

	return Order{
		BuyerID:      buyerID,
		SellerID:     skill.UserID,
		SkillID:      skill.ID,
		PointsAmount: skill.PointsRequired,
		PlatformFee:  fee,
		TotalPoints:  skill.PointsRequired + fee,
		Status:       OrderPending,
		Requirements: requirements,
	}, nil
}

// transitions is the full (status, action) table. Disputed has no exit:
// resolution requires a manual path that product has not defined yet.
var transitions = map[OrderStatus]map[OrderAction]OrderStatus{
	OrderPending: {
		ActionAccept: OrderAccepted,
		ActionCancel: OrderCancelled,
	},
	OrderAccepted: {
		ActionStart:  OrderInProgress,
		ActionCancel: OrderCancelled,
	},
	OrderInProgress: {
		ActionComplete: OrderCompleted,
		ActionCancel:   OrderCancelled,
		ActionDispute:  OrderDisputed,
	},
}

// NextStatus resolves an action against the transition table. A pair the
// table does not permit fails with ErrInvalidTransition naming the current
// status and the requested action; it never silently no-ops.
func NextStatus(current OrderStatus, action OrderAction) (OrderStatus, error) {
	next, ok := transitions[current][action]
	if !ok {
		return "", fmt.Errorf("%w: cannot %q an order in status %q", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// IsTerminal reports whether no further transitions exist for the status.
// Disputed is parked rather than terminal but permits no automatic exits.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// ApplyTransition mutates the order's status and timestamps for a permitted
// action. Ledger postings belong to the caller's transaction.
func (o *Order) ApplyTransition(action OrderAction, now time.Time) error {
	next, err := NextStatus(o.Status, action)
	if err != nil {
		return err
	}

	o.Status = next
	switch next {
	case OrderAccepted:
		o.AcceptedAt = &now
	case OrderInProgress:
		o.StartedAt = &now
	case OrderCompleted:
		o.CompletedAt = &now
		o.ActualDelivery = &now
	case OrderCancelled:
		o.CancelledAt = &now
	}

	return nil
}
