package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type ChatService interface {
	GetRoom(ctx context.Context, orderID, userID uint) (domain.ChatRoom, domain.Order, error)
	SendMessage(ctx context.Context, orderID, senderID uint, msgType domain.MessageType, content string) (domain.Message, error)
	GetMessages(ctx context.Context, orderID, userID uint, limit, offset int) ([]domain.Message, error)
}

type chatClient struct {
	conn    *websocket.Conn
	send    chan []byte
	userID  uint
	orderID uint
}

// inboundMessage is the frame a connected client writes.
type inboundMessage struct {
	Type    string `json:"message_type,omitempty"`
	Content string `json:"content"`
}

type ChatHandler struct {
	svc ChatService

	roomsMutex sync.RWMutex
	rooms      map[uint]map[*chatClient]bool

	register   chan *chatClient
	unregister chan *chatClient
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		svc:        svc,
		rooms:      make(map[uint]map[*chatClient]bool),
		register:   make(chan *chatClient),
		unregister: make(chan *chatClient),
	}
}

// Run owns the room membership maps. Start it once, alongside the server.
func (h *ChatHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.roomsMutex.Lock()
			if h.rooms[client.orderID] == nil {
				h.rooms[client.orderID] = make(map[*chatClient]bool)
			}
			h.rooms[client.orderID][client] = true
			h.roomsMutex.Unlock()
		case client := <-h.unregister:
			h.roomsMutex.Lock()
			if clients, ok := h.rooms[client.orderID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.orderID)
					}
				}
			}
			h.roomsMutex.Unlock()
		}
	}
}

func (h *ChatHandler) broadcastToRoom(orderID uint, payload []byte) {
	h.roomsMutex.RLock()
	defer h.roomsMutex.RUnlock()

	for client := range h.rooms[orderID] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; readPump's deferred unregister cleans up.
		}
	}
}

// HandleWebSocket godoc
// @Summary      Join the order's chat room over WebSocket
// @Description  Real-time chat between the buyer and the seller of an order
// @Tags         chat
// @Produce      json
// @Param        orderID path int true "order ID"
// @Success      101 {string} string "Switching Protocols to WebSocket"
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Router       /orders/{orderID}/chat [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleWebSocket(ctx *gin.Context) {
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

	// Membership check before the upgrade, so outsiders get a clean 403.
	if _, _, err := h.svc.GetRoom(ctx.Request.Context(), orderID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
		case errors.Is(err, service.ErrNotOrderParticipant):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &chatClient{
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		orderID: orderID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *chatClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *chatClient) readPump(h *ChatHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket read failed",
					zap.Uint("user_id", c.userID),
					zap.Uint("order_id", c.orderID),
					zap.Error(err))
			}
			break
		}

		var in inboundMessage
		if err := json.Unmarshal(raw, &in); err != nil {
			c.sendError("invalid message payload")
			continue
		}
		if in.Content == "" {
			c.sendError("message content is required")
			continue
		}
		msgType := domain.MessageType(in.Type)
		if msgType == "" {
			msgType = domain.MessageText
		}

		saved, err := h.svc.SendMessage(context.Background(), c.orderID, c.userID, msgType, in.Content)
		if err != nil {
			zap.L().Error("failed to save chat message",
				zap.Uint("order_id", c.orderID),
				zap.Error(err))
			c.sendError("failed to send message")
			continue
		}

		payload, err := json.Marshal(saved)
		if err != nil {
			continue
		}
		h.broadcastToRoom(c.orderID, payload)
	}
}

func (c *chatClient) sendError(msg string) {
	payload, _ := json.Marshal(map[string]any{
		"message_type": "error",
		"content":      msg,
	})
	select {
	case c.send <- payload:
	default:
	}
}

// HandleGetChatMessages godoc
// @Summary      Get the order's chat history
// @Tags         chat
// @Produce      json
// @Param        orderID path  int true  "order ID"
// @Param        limit   query int false "number of messages (default 20)"
// @Param        offset  query int false "pagination offset"
// @Success      200 {array}  domain.Message
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /orders/{orderID}/messages [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleGetChatMessages(ctx *gin.Context) {
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

	limit, offset := parsePagination(ctx)
	messages, err := h.svc.GetMessages(ctx.Request.Context(), orderID, userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
		case errors.Is(err, service.ErrNotOrderParticipant):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetChatMessages -> h.svc.GetMessages -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, messages)
}
