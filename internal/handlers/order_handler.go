package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
)

type orderApplicationService interface {
	CreateOrder(ctx context.Context, input services.CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string, recipientEmail string) (*models.Order, error)
	ConfirmPayment(ctx context.Context, id int64) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type OrderHandler struct {
	service orderApplicationService
}

func NewOrderHandler(service orderApplicationService) *OrderHandler {
	return &OrderHandler{service: service}
}

type createOrderRequest struct {
	UserID          int64              `json:"user_id"`
	TotalPrice      float64            `json:"total_price"`
	Items           []models.OrderItem `json:"items"`
	ShippingAddress models.Address     `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	order, err := h.service.CreateOrder(c.Context(), services.CreateOrderInput{
		UserID:          req.UserID,
		TotalPrice:      req.TotalPrice,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	order, err := h.service.GetOrder(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.UpdateOrder(c.Context(), id, &order)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"order": updated})
}

type updateOrderStatusRequest struct {
	Status         string `json:"status"`
	RecipientEmail string `json:"recipient_email"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	order, err := h.service.UpdateOrderStatus(c.Context(), id, req.Status, req.RecipientEmail)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	order, err := h.service.ConfirmPayment(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment recorded", "order": order})
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	if err := h.service.DeleteOrder(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}
