package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillswap/skillswap-api/internal/domain"
)

var ErrReviewNotFound = errors.New("review not found")

type Review struct {
	ID         uint `gorm:"primaryKey"`
	ReviewerID uint `gorm:"not null;index"`
	RevieweeID uint `gorm:"not null;index"`
	SkillID    uint `gorm:"not null;index"`
	OrderID    uint `gorm:"not null;uniqueIndex"`

	Rating              int `gorm:"not null"`
	Comment             string
	CommunicationRating int `gorm:"not null;default:5"`
	QualityRating       int `gorm:"not null;default:5"`
	DeliveryRating      int `gorm:"not null;default:5"`

	IsPublic  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

// InsertForOrder creates the review inside a transaction that re-checks
// eligibility under a lock on the order row: the order must be completed,
// the reviewer must be its buyer, and no review may exist yet. Anything
// else is domain.ErrReviewNotAllowed.
func (d *ReviewDAO) InsertForOrder(ctx context.Context, review Review) (Review, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, review.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != string(domain.OrderCompleted) {
			return domain.ErrReviewNotAllowed
		}
		if order.BuyerID != review.ReviewerID {
			return domain.ErrReviewNotAllowed
		}

		var count int64
		if err := tx.Model(&Review{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrReviewNotAllowed
		}

		review.RevieweeID = order.SellerID
		review.SkillID = order.SkillID

		return tx.Create(&review).Error
	})
	if err != nil {
		return Review{}, err
	}

	return review, nil
}

func (d *ReviewDAO) FindBySkillID(ctx context.Context, skillID uint, limit, offset int) ([]Review, error) {
	var reviews []Review

	result := d.db.WithContext(ctx).
		Where("skill_id = ? AND is_public = ?", skillID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

func (d *ReviewDAO) FindByOrderID(ctx context.Context, orderID uint) (Review, error) {
	var review Review

	result := d.db.WithContext(ctx).First(&review, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Review{}, ErrReviewNotFound
		}

		return Review{}, result.Error
	}

	return review, nil
}
