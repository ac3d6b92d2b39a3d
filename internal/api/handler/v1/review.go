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

type ReviewService interface {
	CreateReview(ctx context.Context, review domain.Review) (domain.Review, error)
	GetSkillReviews(ctx context.Context, skillID uint, limit, offset int) ([]domain.Review, error)
	GetOrderReview(ctx context.Context, orderID uint) (domain.Review, error)
}

type ReviewHandler struct {
	svc ReviewService
}

func NewReviewHandler(svc ReviewService) *ReviewHandler {
	return &ReviewHandler{
		svc: svc,
	}
}

// HandleCreateReview godoc
// @Summary      Review a completed order (buyer only, once)
// @Tags         reviews
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Param        request   body      request.CreateReviewRequest true "request body"
// @Success      201      {object}   domain.Review
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/review [post]
func (h *ReviewHandler) HandleCreateReview(ctx *gin.Context) {
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

	var req request.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	review, err := h.svc.CreateReview(ctx.Request.Context(), domain.Review{
		ReviewerID:          userID,
		OrderID:             orderID,
		Rating:              req.Rating,
		Comment:             req.Comment,
		CommunicationRating: req.CommunicationRating,
		QualityRating:       req.QualityRating,
		DeliveryRating:      req.DeliveryRating,
		IsPublic:            isPublic,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
		case errors.Is(err, service.ErrReviewNotAllowed):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		default:
			err = fmt.Errorf("v1.HandleCreateReview -> h.svc.CreateReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, review)
}

// HandleGetSkillReviews godoc
// @Summary      List public reviews for a skill
// @Tags         reviews
// @Produce      json
// @Param        skillID   path      int  true  "skill ID"
// @Success      200      {array}    domain.Review
// @Failure      500      {object}   response.Err
// @Router       /skills/{skillID}/reviews [get]
func (h *ReviewHandler) HandleGetSkillReviews(ctx *gin.Context) {
	skillID, err := parseUintParam(ctx, "skillID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	limit, offset := parsePagination(ctx)
	reviews, err := h.svc.GetSkillReviews(ctx.Request.Context(), skillID, limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSkillReviews -> h.svc.GetSkillReviews -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

// HandleGetOrderReview godoc
// @Summary      Get the review attached to an order
// @Tags         reviews
// @Produce      json
// @Param        orderID   path      int  true  "order ID"
// @Success      200      {object}   domain.Review
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/review [get]
func (h *ReviewHandler) HandleGetOrderReview(ctx *gin.Context) {
	orderID, err := parseUintParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	review, err := h.svc.GetOrderReview(ctx.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("review", "order ID", orderID))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrderReview -> h.svc.GetOrderReview -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, review)
}
