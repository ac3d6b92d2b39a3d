package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreatePaymentRequest struct {
	PackageID uint `json:"package_id"`
}

func (req *CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PackageID, validation.Required),
	)
}

type ConfirmPaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

func (req *ConfirmPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PaymentID, validation.Required, is.UUIDv4),
	)
}
