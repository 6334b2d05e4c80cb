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
	"github.com/zubairahm3d/pak-style-backend/internal/services"
)

type stubOrderService struct {
	createResult  *models.Order
	createErr     error
	confirmResult *models.Order
	confirmErr    error
	lastInput     services.CreateOrderInput
	lastConfirmID int64
}

func (s *stubOrderService) CreateOrder(_ context.Context, input services.CreateOrderInput) (*models.Order, error) {
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubOrderService) ListOrders(_ context.Context) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderService) GetOrder(_ context.Context, _ int64) (*models.Order, error) {
	return nil, services.ErrOrderNotFound
}

func (s *stubOrderService) UpdateOrder(_ context.Context, _ int64, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (s *stubOrderService) UpdateOrderStatus(_ context.Context, _ int64, _ string, _ string) (*models.Order, error) {
	return nil, services.ErrInvalidInput
}

func (s *stubOrderService) ConfirmPayment(_ context.Context, id int64) (*models.Order, error) {
	s.lastConfirmID = id
	return s.confirmResult, s.confirmErr
}

func (s *stubOrderService) DeleteOrder(_ context.Context, _ int64) error {
	return nil
}

func TestCreateOrderReturnsCreatedOrder(t *testing.T) {
	service := &stubOrderService{
		createResult: &models.Order{ID: 1, OrderID: "b2f1", Status: "Pending"},
	}
	handler := NewOrderHandler(service)

	app := fiber.New()
	app.Post("/api/v1/orders", handler.Create)

	body := `{"user_id":3,"total_price":2500,"payment_method":"cash_on_delivery"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastInput.UserID != 3 || service.lastInput.TotalPrice != 2500 {
		t.Fatalf("unexpected input: %+v", service.lastInput)
	}

	var decoded struct {
		Order models.Order `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Order.OrderID != "b2f1" {
		t.Fatalf("unexpected order id %q", decoded.Order.OrderID)
	}
}

func TestConfirmPaymentMapsAlreadyPaidToBadRequest(t *testing.T) {
	service := &stubOrderService{confirmErr: services.ErrOrderAlreadyPaid}
	handler := NewOrderHandler(service)

	app := fiber.New()
	app.Post("/api/v1/orders/:id/confirm-payment", handler.ConfirmPayment)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/12/confirm-payment", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.lastConfirmID != 12 {
		t.Fatalf("expected order 12, got %d", service.lastConfirmID)
	}
}

func TestGetOrderMapsMissingOrderToNotFound(t *testing.T) {
	handler := NewOrderHandler(&stubOrderService{})

	app := fiber.New()
	app.Get("/api/v1/orders/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/44", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
