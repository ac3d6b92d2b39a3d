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

type OrderService interface {
	CreateOrder(ctx context.Context, buyerID, skillID uint, requirements string) (domain.Order, error)
	TransitionOrder(ctx context.Context, orderID, actorID uint, action domain.OrderAction) (domain.Order, error)
	GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error)
	GetOrders(ctx context.Context, userID uint) ([]domain.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCreateOrder godoc
// @Summary      Place an order and escrow the points
// @Tags         orders
// @Produce      json
// @Param        request   body      request.CreateOrderRequest true "request body"
// @Success      201      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders [post]
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), userID, req.SkillID, req.Requirements)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", req.SkillID))
		case errors.Is(err, service.ErrInsufficientBalance),
			errors.Is(err, service.ErrSkillNotActive),
			errors.Is(err, service.ErrSelfOrder):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		default:
			err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGetOrders godoc
// @Summary      List the authenticated user's orders
// @Tags         orders
// @Produce      json
// @Success      200      {array}    domain.Order
// @Failure      500      {object}   response.Err
// @Router       /orders [get]
func (h *OrderHandler) HandleGetOrders(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	orders, err := h.svc.GetOrders(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOrders -> h.svc.GetOrders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleGetOrder godoc
// @Summary      Get one of the user's orders
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	orderID, err := parseUintParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
		case errors.Is(err, service.ErrNotOrderParticipant):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleAcceptOrder godoc
// @Summary      Accept a pending order (seller)
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /orders/{orderID}/accept [post]
func (h *OrderHandler) HandleAcceptOrder(ctx *gin.Context) {
	h.handleTransition(ctx, domain.ActionAccept)
}

// HandleStartOrder godoc
// @Summary      Start an accepted order
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /orders/{orderID}/start [post]
func (h *OrderHandler) HandleStartOrder(ctx *gin.Context) {
	h.handleTransition(ctx, domain.ActionStart)
}

// HandleCompleteOrder godoc
// @Summary      Complete an order and release escrow (seller)
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /orders/{orderID}/complete [post]
func (h *OrderHandler) HandleCompleteOrder(ctx *gin.Context) {
	h.handleTransition(ctx, domain.ActionComplete)
}

// HandleCancelOrder godoc
// @Summary      Cancel an order and refund the escrow
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /orders/{orderID}/cancel [post]
func (h *OrderHandler) HandleCancelOrder(ctx *gin.Context) {
	h.handleTransition(ctx, domain.ActionCancel)
}

// HandleDisputeOrder godoc
// @Summary      Dispute an in-progress order
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /orders/{orderID}/dispute [post]
func (h *OrderHandler) HandleDisputeOrder(ctx *gin.Context) {
	h.handleTransition(ctx, domain.ActionDispute)
}

func (h *OrderHandler) handleTransition(ctx *gin.Context, action domain.OrderAction) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	orderID, err := parseUintParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.TransitionOrder(ctx.Request.Context(), orderID, userID, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
		case errors.Is(err, service.ErrNotOrderParticipant),
			errors.Is(err, service.ErrActionNotAllowedForActor):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidTransition),
			errors.Is(err, service.ErrInsufficientBalance):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		default:
			err = fmt.Errorf("v1.handleTransition(%v) -> h.svc.TransitionOrder -> %w", action, err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}
