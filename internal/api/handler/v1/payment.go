package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/request"
	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type PaymentService interface {
	GetPackages(ctx context.Context) ([]domain.PointsPackage, error)
	CreatePayment(ctx context.Context, userID, packageID uint) (domain.Payment, error)
	ConfirmPayment(ctx context.Context, userID uint, paymentID string) (domain.Payment, error)
	GetPayment(ctx context.Context, userID uint, paymentID string) (domain.Payment, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleGetPackages godoc
// @Summary      List purchasable points packages
// @Tags         payments
// @Produce      json
// @Success      200      {array}    domain.PointsPackage
// @Failure      500      {object}   response.Err
// @Router       /points/packages [get]
func (h *PaymentHandler) HandleGetPackages(ctx *gin.Context) {
	packages, err := h.svc.GetPackages(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPackages -> h.svc.GetPackages -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, packages)
}

// HandleCreatePayment godoc
// @Summary      Open a payment for a points package
// @Tags         payments
// @Produce      json
// @Param        request   body      request.CreatePaymentRequest true "request body"
// @Success      201      {object}   domain.Payment
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments [post]
func (h *PaymentHandler) HandleCreatePayment(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	var req request.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payment, err := h.svc.CreatePayment(ctx.Request.Context(), userID, req.PackageID)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("points package", "ID", req.PackageID))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePayment -> h.svc.CreatePayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

// HandleConfirmPayment godoc
// @Summary      Confirm a payment and credit the points
// @Tags         payments
// @Produce      json
// @Param        request   body      request.ConfirmPaymentRequest true "request body"
// @Success      200      {object}   domain.Payment
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/confirm [post]
func (h *PaymentHandler) HandleConfirmPayment(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	var req request.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payment, err := h.svc.ConfirmPayment(ctx.Request.Context(), userID, req.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("payment", "ID", req.PaymentID))
		case errors.Is(err, service.ErrPaymentNotConfirmed):
			response.RenderErr(ctx, response.ErrPaymentRequired(err))
		default:
			err = fmt.Errorf("v1.HandleConfirmPayment -> h.svc.ConfirmPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// HandleGetPayment godoc
// @Summary      Get one of the user's payments
// @Tags         payments
// @Produce      json
// @Param        paymentID path      string true "payment ID"
// @Success      200      {object}   domain.Payment
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{paymentID} [get]
func (h *PaymentHandler) HandleGetPayment(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	paymentID := ctx.Param("paymentID")
	payment, err := h.svc.GetPayment(ctx.Request.Context(), userID, paymentID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("payment", "ID", paymentID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPayment -> h.svc.GetPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, payment)
}
