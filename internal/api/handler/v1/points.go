package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
)

// PointsService is read-only: ledger writes happen through order
// transitions, payments and signup, never through a request body.
type PointsService interface {
	GetTransactions(ctx context.Context, userID uint, limit, offset int) ([]domain.PointsTransaction, error)
	GetBalance(ctx context.Context, userID uint) (int, error)
	Audit(ctx context.Context, userID uint) (int, error)
}

type PointsHandler struct {
	svc PointsService
}

func NewPointsHandler(svc PointsService) *PointsHandler {
	return &PointsHandler{
		svc: svc,
	}
}

// HandleGetTransactions godoc
// @Summary      List the user's points transactions, newest first
// @Tags         points
// @Produce      json
// @Success      200      {array}    domain.PointsTransaction
// @Failure      500      {object}   response.Err
// @Router       /points/transactions [get]
func (h *PointsHandler) HandleGetTransactions(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	limit, offset := parsePagination(ctx)
	txns, err := h.svc.GetTransactions(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTransactions -> h.svc.GetTransactions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, txns)
}

// HandleGetBalance godoc
// @Summary      Get the user's current points balance
// @Tags         points
// @Produce      json
// @Success      200      {object}   map[string]int
// @Failure      500      {object}   response.Err
// @Router       /points/balance [get]
func (h *PointsHandler) HandleGetBalance(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	balance, err := h.svc.GetBalance(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBalance -> h.svc.GetBalance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"balance": balance})
}

// HandleAuditBalance godoc
// @Summary      Replay the transaction log against the balance
// @Tags         points
// @Produce      json
// @Success      200      {object}   map[string]int
// @Failure      500      {object}   response.Err
// @Router       /points/audit [get]
func (h *PointsHandler) HandleAuditBalance(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	sum, err := h.svc.Audit(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleAuditBalance -> h.svc.Audit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"balance": sum})
}
