package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSkillRequest struct {
	CategoryID        uint   `json:"category_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	PointsRequired    int    `json:"points_required"`
	EstimatedDuration string `json:"estimated_duration,omitempty"`
	Language          string `json:"language,omitempty"`
	Difficulty        string `json:"difficulty,omitempty"`
	Tags              string `json:"tags,omitempty"`
}

func (req *CreateSkillRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(3, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(10, 2000)),
		validation.Field(&req.PointsRequired, validation.Required, validation.Min(1)),
		validation.Field(&req.Difficulty, validation.In("beginner", "intermediate", "advanced")),
		validation.Field(&req.Tags, validation.Length(0, 255)),
	)
}
