package handlers

import (
	"context"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
	chatws "github.com/zubairahm3d/pak-style-backend/internal/websocket"
	"github.com/zubairahm3d/pak-style-backend/pkg/utils"
)

type chatApplicationService interface {
	StartConversation(ctx context.Context, userID, recipientID int64, content string) (*services.ChatDelivery, error)
	SendMessage(ctx context.Context, senderID, conversationID int64, content string) (*services.ChatDelivery, error)
	MarkMessagesAsRead(ctx context.Context, conversationID, readerID int64) (int64, error)
	GetTotalUnreadCount(ctx context.Context, userID int64) (int, error)
	ListConversations(ctx context.Context, userID int64) ([]models.ConversationSummary, error)
	ListMessages(ctx context.Context, userID, conversationID int64, page, limit int) ([]models.MessageDetail, int, error)
}

type ChatHandler struct {
	service   chatApplicationService
	hub       *chatws.Hub
	jwtSecret string
}

func NewChatHandler(service chatApplicationService, hub *chatws.Hub, jwtSecret string) *ChatHandler {
	return &ChatHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

type startConversationRequest struct {
	UserID      int64  `json:"user_id"`
	RecipientID int64  `json:"recipient_id"`
	Content     string `json:"content"`
}

func (h *ChatHandler) StartConversation(c *fiber.Ctx) error {
	var req startConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	delivery, err := h.service.StartConversation(c.Context(), req.UserID, req.RecipientID, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}
	h.notify(delivery)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"conversation": delivery.Conversation,
		"message":      delivery.Message,
	})
}

type sendMessageRequest struct {
	SenderID       int64  `json:"sender_id"`
	ConversationID int64  `json:"conversation_id"`
	Content        string `json:"content"`
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	delivery, err := h.service.SendMessage(c.Context(), req.SenderID, req.ConversationID, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}
	h.notify(delivery)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": delivery.Message})
}

func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	conversations, err := h.service.ListConversations(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	conversationID, err := parseIDParam(c, "conversationId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
	}
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	messages, total, err := h.service.ListMessages(c.Context(), userID, conversationID, page, limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"messages":   messages,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

type markReadRequest struct {
	ConversationID int64 `json:"conversation_id"`
	UserID         int64 `json:"user_id"`
}

func (h *ChatHandler) MarkMessagesAsRead(c *fiber.Ctx) error {
	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	cleared, err := h.service.MarkMessagesAsRead(c.Context(), req.ConversationID, req.UserID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Messages marked as read", "cleared": cleared})
}

func (h *ChatHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	count, err := h.service.GetTotalUnreadCount(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

func (h *ChatHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_type", claims.UserType)
	return c.Next()
}

func (h *ChatHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := chatws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

func (h *ChatHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

// notify pushes a committed delivery to connected websocket clients.
// HTTP callers already hold the result, so a nil hub is fine in tests.
func (h *ChatHandler) notify(delivery *services.ChatDelivery) {
	if h.hub != nil {
		h.hub.Broadcast(delivery)
	}
}
