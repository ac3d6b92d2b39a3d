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
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPackageNotFound = errors.New("points package not found")
)

type PointsPackage struct {
	ID                 uint    `gorm:"primaryKey"`
	Name               string  `gorm:"not null"`
	Points             int     `gorm:"not null"`
	Price              float64 `gorm:"not null"`
	Currency           string  `gorm:"not null;default:USD"`
	DiscountPercentage int     `gorm:"not null;default:0"`
	IsPopular          bool    `gorm:"not null;default:false"`
	IsActive           bool    `gorm:"not null;default:true"`
	CreatedAt          time.Time `gorm:"not null"`
}

type Payment struct {
	ID              string `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	PointsPackageID uint   `gorm:"not null"`

	Amount   float64 `gorm:"not null"`
	Currency string  `gorm:"not null"`
	Method   string  `gorm:"not null"`
	Status   string  `gorm:"not null;index"`

	ExternalPaymentID string
	FailureReason     string

	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByID(ctx context.Context, id string) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) MarkFailed(ctx context.Context, id, reason string) error {
	return d.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         string(domain.PaymentFailed),
			"failure_reason": reason,
		}).Error
}

// Complete marks the payment completed and posts the purchased points in
// one transaction. Idempotent: completing an already-completed payment
// returns it unchanged without a second ledger posting.
func (d *PaymentDAO) Complete(ctx context.Context, id string) (Payment, error) {
	var payment Payment

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status == string(domain.PaymentCompleted) {
			return nil
		}

		var pkg PointsPackage
		if err := tx.First(&pkg, payment.PointsPackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return err
		}

		now := time.Now()
		payment.Status = string(domain.PaymentCompleted)
		payment.CompletedAt = &now
		if err := tx.Model(&Payment{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
			"status":       payment.Status,
			"completed_at": &now,
		}).Error; err != nil {
			return err
		}

		_, err := postLocked(tx, PointsTransaction{
			UserID:      payment.UserID,
			Type:        string(domain.TransactionPurchase),
			Amount:      pkg.Points,
			PaymentID:   payment.ID,
			Description: fmt.Sprintf("Purchase of %q package", pkg.Name),
		})

		return err
	})
	if err != nil {
		return Payment{}, err
	}

	return payment, nil
}

func (d *PaymentDAO) FindActivePackages(ctx context.Context) ([]PointsPackage, error) {
	var packages []PointsPackage

	result := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points ASC").
		Find(&packages)
	if result.Error != nil {
		return nil, result.Error
	}

	return packages, nil
}

func (d *PaymentDAO) FindPackageByID(ctx context.Context, id uint) (PointsPackage, error) {
	var pkg PointsPackage

	result := d.db.WithContext(ctx).First(&pkg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PointsPackage{}, ErrPackageNotFound
		}

		return PointsPackage{}, result.Error
	}

	return pkg, nil
}
