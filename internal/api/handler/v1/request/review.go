package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateReviewRequest struct {
	Rating              int    `json:"rating"`
	Comment             string `json:"comment,omitempty"`
	CommunicationRating int    `json:"communication_rating,omitempty"`
	QualityRating       int    `json:"quality_rating,omitempty"`
	DeliveryRating      int    `json:"delivery_rating,omitempty"`
	IsPublic            *bool  `json:"is_public,omitempty"`
}

func (req *CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 1000)),
		validation.Field(&req.CommunicationRating, validation.Min(0), validation.Max(5)),
		validation.Field(&req.QualityRating, validation.Min(0), validation.Max(5)),
		validation.Field(&req.DeliveryRating, validation.Min(0), validation.Max(5)),
	)
}
