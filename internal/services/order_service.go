package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

// minOrderTotal is the smallest accepted retail order total, in PKR.
const minOrderTotal = 50

var retailOrderStatuses = map[string]bool{
	"Pending":  true,
	"Shipped":  true,
	"Canceled": true,
}

type OrderService struct {
	orderRepo *repository.OrderRepository
	mailer    Mailer
}

func NewOrderService(orderRepo *repository.OrderRepository, mailer Mailer) *OrderService {
	return &OrderService{orderRepo: orderRepo, mailer: mailer}
}

type CreateOrderInput struct {
	UserID          int64
	TotalPrice      float64
	Items           []models.OrderItem
	ShippingAddress models.Address
	PaymentMethod   string
}

func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID <= 0 {
		return nil, ErrInvalidInput
	}
	if input.TotalPrice < minOrderTotal {
		return nil, ErrInvalidInput
	}
	if input.PaymentMethod != "cash_on_delivery" && input.PaymentMethod != "credit_card" {
		return nil, ErrInvalidInput
	}

	status := "Pending"
	paymentStatus := "pending"
	if input.PaymentMethod == "credit_card" {
		// Card orders go straight to processing; payment is confirmed
		// via the confirm-payment endpoint.
		status = "Processing"
	}

	order := models.Order{
		OrderID:         uuid.NewString(),
		UserID:          input.UserID,
		TotalPrice:      input.TotalPrice,
		OrderDate:       time.Now().UTC(),
		Status:          status,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   paymentStatus,
		ShippingAddress: input.ShippingAddress,
		Items:           input.Items,
	}
	if err := s.orderRepo.Create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Order, error) {
	updated, err := s.orderRepo.Update(ctx, id, order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UpdateOrderStatus moves a retail order between shipping states and
// mails the customer. Mail failure is logged, not surfaced; the status
// change already committed.
func (s *OrderService) UpdateOrderStatus(
	ctx context.Context,
	id int64,
	status string,
	recipientEmail string,
) (*models.Order, error) {
	if !retailOrderStatuses[status] {
		return nil, ErrInvalidInput
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if s.mailer != nil && recipientEmail != "" {
		body := fmt.Sprintf("Your order has been %s.", status)
		if err := s.mailer.Send(recipientEmail, "Your Order Status", body); err != nil {
			log.Printf("order %d: status mail to %s: %v", id, recipientEmail, err)
		}
	}
	return updated, nil
}

// ConfirmPayment finalizes payment for an order. Gateway integration is
// out of scope; this only moves the recorded payment state.
func (s *OrderService) ConfirmPayment(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == "paid" {
		return nil, ErrOrderAlreadyPaid
	}

	if order.PaymentMethod == "cash_on_delivery" {
		return s.orderRepo.UpdatePayment(ctx, id, "pending", "Pending")
	}
	return s.orderRepo.UpdatePayment(ctx, id, "paid", "Processing")
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}
