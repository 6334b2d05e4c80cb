package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
)

type stubCustomOrderService struct {
	createResult *models.CustomOrderDetail
	createErr    error
	listResult   []models.CustomOrder
	statusResult *models.CustomOrder
	statusErr    error
	lastInput    services.CreateCustomOrderInput
	lastFilter   repository.CustomOrderFilter
	lastStatus   string
}

func (s *stubCustomOrderService) CreateCustomOrder(_ context.Context, input services.CreateCustomOrderInput) (*models.CustomOrderDetail, error) {
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubCustomOrderService) ListCustomOrders(_ context.Context, filter repository.CustomOrderFilter) ([]models.CustomOrder, error) {
	s.lastFilter = filter
	return s.listResult, nil
}

func (s *stubCustomOrderService) GetCustomOrder(_ context.Context, _ int64) (*models.CustomOrder, error) {
	return nil, services.ErrOrderNotFound
}

func (s *stubCustomOrderService) UpdateCustomOrder(_ context.Context, _ int64, order *models.CustomOrder) (*models.CustomOrder, error) {
	return order, nil
}

func (s *stubCustomOrderService) UpdateStatus(_ context.Context, _ int64, status string) (*models.CustomOrder, error) {
	s.lastStatus = status
	return s.statusResult, s.statusErr
}

func (s *stubCustomOrderService) DeleteCustomOrder(_ context.Context, _ int64) error {
	return nil
}

const createCustomOrderBody = `{
	"designer_id": 7, "user_id": 3, "brand_id": 5, "product_id": 11,
	"full_name": "Asad Raza", "email": "asad@example.com",
	"measurements": {
		"chest": 96.5, "shoulder": "44", "waist": 82,
		"inseam": "78.25", "arm_length": 61, "leg_length": "99"
	},
	"consultation_date": "2026-09-20T15:00:00Z"
}`

func TestCreateCustomOrderCoercesMeasurementFields(t *testing.T) {
	service := &stubCustomOrderService{
		createResult: &models.CustomOrderDetail{
			CustomOrder: models.CustomOrder{ID: 101, OrderID: "CO26090001", Status: "pending"},
		},
	}
	handler := NewCustomOrderHandler(service)

	app := fiber.New()
	app.Post("/api/v1/custom-orders", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/custom-orders", strings.NewReader(createCustomOrderBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// JSON numbers and numeric strings must both arrive intact for the
	// service to coerce.
	m := service.lastInput.Measurements
	if m.Chest != "96.5" || m.Shoulder != "44" || m.Waist != "82" {
		t.Fatalf("unexpected coerced measurements: %+v", m)
	}
	if m.Inseam != "78.25" || m.ArmLength != "61" || m.LegLength != "99" {
		t.Fatalf("unexpected coerced measurements: %+v", m)
	}

	var decoded struct {
		CustomOrder models.CustomOrderDetail `json:"custom_order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.CustomOrder.OrderID != "CO26090001" {
		t.Fatalf("unexpected order id %q", decoded.CustomOrder.OrderID)
	}
}

func TestCreateCustomOrderMapsDuplicateIDToConflict(t *testing.T) {
	service := &stubCustomOrderService{createErr: services.ErrDuplicateOrderID}
	handler := NewCustomOrderHandler(service)

	app := fiber.New()
	app.Post("/api/v1/custom-orders", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/custom-orders", strings.NewReader(createCustomOrderBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCreateCustomOrderMapsValidationToBadRequest(t *testing.T) {
	service := &stubCustomOrderService{createErr: services.ErrInvalidInput}
	handler := NewCustomOrderHandler(service)

	app := fiber.New()
	app.Post("/api/v1/custom-orders", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/custom-orders", strings.NewReader(createCustomOrderBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListCustomOrdersPassesFilters(t *testing.T) {
	service := &stubCustomOrderService{}
	handler := NewCustomOrderHandler(service)

	app := fiber.New()
	app.Get("/api/v1/custom-orders", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/custom-orders?designer_id=7&status=pending", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastFilter.DesignerID != 7 || service.lastFilter.Status != "pending" {
		t.Fatalf("unexpected filter: %+v", service.lastFilter)
	}
}

func TestUpdateCustomOrderStatusForwardsStatus(t *testing.T) {
	service := &stubCustomOrderService{
		statusResult: &models.CustomOrder{ID: 101, Status: "confirmed"},
	}
	handler := NewCustomOrderHandler(service)

	app := fiber.New()
	app.Patch("/api/v1/custom-orders/:id/status", handler.UpdateStatus)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/custom-orders/101/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastStatus != "confirmed" {
		t.Fatalf("expected status confirmed, got %q", service.lastStatus)
	}
}
