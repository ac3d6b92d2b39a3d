package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateOrderRequest struct {
	SkillID      uint   `json:"skill_id"`
	Requirements string `json:"requirements,omitempty"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SkillID, validation.Required),
		validation.Field(&req.Requirements, validation.Length(0, 2000)),
	)
}
