package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type NotificationService interface {
	GetNotifications(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
	}
}

// HandleGetNotifications godoc
// @Summary      List the user's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Success      200      {array}    domain.Notification
// @Failure      500      {object}   response.Err
// @Router       /notifications [get]
func (h *NotificationHandler) HandleGetNotifications(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	limit, offset := parsePagination(ctx)
	notifications, err := h.svc.GetNotifications(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetNotifications -> h.svc.GetNotifications -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// HandleMarkRead godoc
// @Summary      Mark one notification as read
// @Tags         notifications
// @Produce      json
// @Param        notificationID path int true "notification ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notifications/{notificationID}/read [post]
func (h *NotificationHandler) HandleMarkRead(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	notificationID, err := parseUintParam(ctx, "notificationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.MarkRead(ctx.Request.Context(), userID, notificationID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notification", "ID", notificationID))
			return
		}

		err = fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCountUnread godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200      {object}   map[string]int64
// @Failure      500      {object}   response.Err
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) HandleCountUnread(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	count, err := h.svc.CountUnread(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCountUnread -> h.svc.CountUnread -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unread": count})
}
