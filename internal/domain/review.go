package domain

import (
	"errors"
	"time"
)

var ErrReviewNotAllowed = errors.New("review not allowed for this order")

// Review rates one completed order. At most one review exists per order,
// written by the buyer.
type Review struct {
	ID         uint `json:"id"`
	ReviewerID uint `json:"reviewer_id"`
	RevieweeID uint `json:"reviewee_id"`
	SkillID    uint `json:"skill_id"`
	OrderID    uint `json:"order_id"`

	Rating              int    `json:"rating"`
	Comment             string `json:"comment,omitempty"`
	CommunicationRating int    `json:"communication_rating"`
	QualityRating       int    `json:"quality_rating"`
	DeliveryRating      int    `json:"delivery_rating"`

	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingStats is the recomputed aggregate a review commit feeds back into
// the skill and the seller.
type RatingStats struct {
	Average float64
	Count   int
}
