package domain

import "time"

type PaymentMethod string

const (
	PaymentStripe       PaymentMethod = "stripe"
	PaymentPaymob       PaymentMethod = "paymob"
	PaymentVodafoneCash PaymentMethod = "vodafone_cash"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Payment is one gateway charge for a points package.
type Payment struct {
	ID              string        `json:"id"`
	UserID          uint          `json:"user_id"`
	PointsPackageID uint          `json:"points_package_id"`

	Amount   float64       `json:"amount"`
	Currency string        `json:"currency"`
	Method   PaymentMethod `json:"payment_method"`
	Status   PaymentStatus `json:"status"`

	ExternalPaymentID string `json:"external_payment_id,omitempty"`
	ClientSecret      string `json:"client_secret,omitempty"`
	FailureReason     string `json:"failure_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
