package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
)

type customOrderApplicationService interface {
	CreateCustomOrder(ctx context.Context, input services.CreateCustomOrderInput) (*models.CustomOrderDetail, error)
	ListCustomOrders(ctx context.Context, filter repository.CustomOrderFilter) ([]models.CustomOrder, error)
	GetCustomOrder(ctx context.Context, id int64) (*models.CustomOrder, error)
	UpdateCustomOrder(ctx context.Context, id int64, order *models.CustomOrder) (*models.CustomOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.CustomOrder, error)
	DeleteCustomOrder(ctx context.Context, id int64) error
}

type CustomOrderHandler struct {
	service customOrderApplicationService
}

func NewCustomOrderHandler(service customOrderApplicationService) *CustomOrderHandler {
	return &CustomOrderHandler{service: service}
}

// measurementsRequest accepts each field as a JSON number or a numeric
// string; clients send both.
type measurementsRequest struct {
	Chest     any `json:"chest"`
	Shoulder  any `json:"shoulder"`
	Waist     any `json:"waist"`
	Inseam    any `json:"inseam"`
	ArmLength any `json:"arm_length"`
	LegLength any `json:"leg_length"`
}

type createCustomOrderRequest struct {
	DesignerID          int64               `json:"designer_id"`
	UserID              int64               `json:"user_id"`
	BrandID             int64               `json:"brand_id"`
	ProductID           int64               `json:"product_id"`
	FullName            string              `json:"full_name"`
	Phone               string              `json:"phone"`
	Email               string              `json:"email"`
	Address             string              `json:"address"`
	GarmentType         string              `json:"garment_type"`
	Occasion            string              `json:"occasion"`
	Fabric              string              `json:"fabric"`
	Color               string              `json:"color"`
	Pattern             string              `json:"pattern"`
	Fitting             string              `json:"fitting"`
	Measurements        measurementsRequest `json:"measurements"`
	SpecialInstructions *string             `json:"special_instructions"`
	DeliveryPreference  string              `json:"delivery_preference"`
	PaymentMethod       string              `json:"payment_method"`
	RushOrder           bool                `json:"rush_order"`
	ConsultationDate    time.Time           `json:"consultation_date"`
}

func (h *CustomOrderHandler) Create(c *fiber.Ctx) error {
	var req createCustomOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	detail, err := h.service.CreateCustomOrder(c.Context(), services.CreateCustomOrderInput{
		DesignerID:  req.DesignerID,
		UserID:      req.UserID,
		BrandID:     req.BrandID,
		ProductID:   req.ProductID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		GarmentType: req.GarmentType,
		Occasion:    req.Occasion,
		Fabric:      req.Fabric,
		Color:       req.Color,
		Pattern:     req.Pattern,
		Fitting:     req.Fitting,
		Measurements: services.MeasurementsInput{
			Chest:     measurementField(req.Measurements.Chest),
			Shoulder:  measurementField(req.Measurements.Shoulder),
			Waist:     measurementField(req.Measurements.Waist),
			Inseam:    measurementField(req.Measurements.Inseam),
			ArmLength: measurementField(req.Measurements.ArmLength),
			LegLength: measurementField(req.Measurements.LegLength),
		},
		SpecialInstructions: req.SpecialInstructions,
		DeliveryPreference:  req.DeliveryPreference,
		PaymentMethod:       req.PaymentMethod,
		RushOrder:           req.RushOrder,
		ConsultationDate:    req.ConsultationDate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"custom_order": detail})
}

func (h *CustomOrderHandler) List(c *fiber.Ctx) error {
	filter := repository.CustomOrderFilter{
		Status: c.Query("status"),
	}
	if raw := c.Query("designer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid designer id"})
		}
		filter.DesignerID = id
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
		}
		filter.UserID = id
	}

	orders, err := h.service.ListCustomOrders(c.Context(), filter)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"custom_orders": orders})
}

func (h *CustomOrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	order, err := h.service.GetCustomOrder(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"custom_order": order})
}

func (h *CustomOrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var order models.CustomOrder
	if err := c.BodyParser(&order); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.UpdateCustomOrder(c.Context(), id, &order)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"custom_order": updated})
}

type updateCustomOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *CustomOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var req updateCustomOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	order, err := h.service.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"custom_order": order})
}

func (h *CustomOrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	if err := h.service.DeleteCustomOrder(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Custom order deleted successfully"})
}

// measurementField renders a decoded JSON value as the string the
// service coerces. Numbers keep full precision; anything unexpected
// comes out empty and fails validation downstream.
func measurementField(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
