package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrForbidden            = errors.New("forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrDesignerNotFound     = errors.New("designer not found")
	ErrBrandNotFound        = errors.New("brand not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrOrderAlreadyPaid     = errors.New("order already paid")

	// ErrDuplicateOrderID means every attempt collided on the generated
	// identifier; the whole request is safe to retry.
	ErrDuplicateOrderID = errors.New("duplicate order id")
)

const (
	orderCreateAttempts = 5
	orderRetryUnit      = 200 * time.Millisecond
	orderIDDigits       = 4
)

var customOrderStatuses = map[string]bool{
	"pending":    true,
	"confirmed":  true,
	"inProgress": true,
	"completed":  true,
	"cancelled":  true,
}

type dbBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type CustomOrderService struct {
	db        dbBeginner
	orderRepo *repository.CustomOrderRepository
	now       func() time.Time
	sleep     func(time.Duration)
}

func NewCustomOrderService(db dbBeginner, orderRepo *repository.CustomOrderRepository) *CustomOrderService {
	return &CustomOrderService{
		db:        db,
		orderRepo: orderRepo,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// MeasurementsInput carries the six measurement fields as they arrived on
// the wire; values may be numbers or numeric strings and are coerced by
// the service.
type MeasurementsInput struct {
	Chest     string
	Shoulder  string
	Waist     string
	Inseam    string
	ArmLength string
	LegLength string
}

type CreateCustomOrderInput struct {
	DesignerID          int64
	UserID              int64
	BrandID             int64
	ProductID           int64
	FullName            string
	Phone               string
	Email               string
	Address             string
	GarmentType         string
	Occasion            string
	Fabric              string
	Color               string
	Pattern             string
	Fitting             string
	Measurements        MeasurementsInput
	SpecialInstructions *string
	DeliveryPreference  string
	PaymentMethod       string
	RushOrder           bool
	ConsultationDate    time.Time
}

// CreateCustomOrder validates the payload, then runs the transactional
// creation under a bounded retry: generate an order id, insert, resolve
// the four references, commit. A duplicate-key loss to a concurrent
// creator aborts the transaction and the next attempt allocates a fresh
// id; validation and missing-reference failures are never retried.
func (s *CustomOrderService) CreateCustomOrder(
	ctx context.Context,
	input CreateCustomOrderInput,
) (*models.CustomOrderDetail, error) {
	if input.DesignerID <= 0 || input.UserID <= 0 || input.BrandID <= 0 || input.ProductID <= 0 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, ErrInvalidInput
	}
	if input.ConsultationDate.IsZero() {
		return nil, ErrInvalidInput
	}

	measurements, err := parseMeasurements(input.Measurements)
	if err != nil {
		return nil, err
	}

	var detail *models.CustomOrderDetail
	err = withRetry(ctx, orderCreateAttempts, orderRetryUnit, s.sleep, func() error {
		created, attemptErr := s.createOnce(ctx, input, measurements)
		if attemptErr != nil {
			return attemptErr
		}
		detail = created
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateOrderID
		}
		return nil, err
	}
	return detail, nil
}

// createOnce is a single attempt: everything happens inside one
// transaction so a failure leaves no partial state behind.
func (s *CustomOrderService) createOnce(
	ctx context.Context,
	input CreateCustomOrderInput,
	measurements models.Measurements,
) (*models.CustomOrderDetail, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txOrderRepo := repository.NewCustomOrderRepository(tx)

	prefix := orderIDPrefix(s.now())
	latest, err := txOrderRepo.LatestOrderID(ctx, prefix)
	if err != nil {
		return nil, err
	}
	orderID, err := nextOrderID(prefix, latest)
	if err != nil {
		return nil, err
	}

	order := models.CustomOrder{
		OrderID:             orderID,
		DesignerID:          input.DesignerID,
		UserID:              input.UserID,
		BrandID:             input.BrandID,
		ProductID:           input.ProductID,
		FullName:            strings.TrimSpace(input.FullName),
		Phone:               strings.TrimSpace(input.Phone),
		Email:               strings.ToLower(strings.TrimSpace(input.Email)),
		Address:             strings.TrimSpace(input.Address),
		GarmentType:         input.GarmentType,
		Occasion:            input.Occasion,
		Fabric:              input.Fabric,
		Color:               input.Color,
		Pattern:             input.Pattern,
		Fitting:             input.Fitting,
		Measurements:        measurements,
		SpecialInstructions: input.SpecialInstructions,
		DeliveryPreference:  input.DeliveryPreference,
		PaymentMethod:       input.PaymentMethod,
		RushOrder:           input.RushOrder,
		ConsultationDate:    input.ConsultationDate,
		Status:              "pending",
	}
	if err := txOrderRepo.Create(ctx, &order); err != nil {
		return nil, err
	}

	detail := models.CustomOrderDetail{CustomOrder: order}

	designer, err := repository.NewDesignerRepository(tx).Summary(ctx, input.DesignerID)
	if err != nil {
		return nil, refErr(err, ErrDesignerNotFound)
	}
	customer, err := repository.NewUserRepository(tx).Summary(ctx, input.UserID)
	if err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	brand, err := repository.NewBrandRepository(tx).Summary(ctx, input.BrandID)
	if err != nil {
		return nil, refErr(err, ErrBrandNotFound)
	}
	product, err := repository.NewProductRepository(tx).Summary(ctx, input.ProductID)
	if err != nil {
		return nil, refErr(err, ErrProductNotFound)
	}
	detail.Designer = designer
	detail.Customer = customer
	detail.Brand = brand
	detail.Product = product

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *CustomOrderService) ListCustomOrders(
	ctx context.Context,
	filter repository.CustomOrderFilter,
) ([]models.CustomOrder, error) {
	if filter.Status != "" && !customOrderStatuses[filter.Status] {
		return nil, ErrInvalidInput
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *CustomOrderService) GetCustomOrder(ctx context.Context, id int64) (*models.CustomOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *CustomOrderService) UpdateCustomOrder(
	ctx context.Context,
	id int64,
	order *models.CustomOrder,
) (*models.CustomOrder, error) {
	updated, err := s.orderRepo.Update(ctx, id, order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *CustomOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.CustomOrder, error) {
	if !customOrderStatuses[status] {
		return nil, ErrInvalidInput
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *CustomOrderService) DeleteCustomOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// orderIDPrefix builds the month component, e.g. CO2608 for August 2026.
func orderIDPrefix(now time.Time) string {
	return now.UTC().Format("CO0601")
}

// nextOrderID increments the trailing sequence of the latest id for the
// month, starting at 0001 when the month is empty. The sequence resets
// every calendar month because the prefix changes.
func nextOrderID(prefix, latest string) (string, error) {
	seq := 1
	if latest != "" {
		if len(latest) != len(prefix)+orderIDDigits || !strings.HasPrefix(latest, prefix) {
			return "", fmt.Errorf("malformed order id %q", latest)
		}
		last, err := strconv.Atoi(latest[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("malformed order id %q: %w", latest, err)
		}
		seq = last + 1
	}
	return fmt.Sprintf("%s%0*d", prefix, orderIDDigits, seq), nil
}

func parseMeasurements(input MeasurementsInput) (models.Measurements, error) {
	var m models.Measurements
	fields := []struct {
		raw  string
		dest *float64
	}{
		{input.Chest, &m.Chest},
		{input.Shoulder, &m.Shoulder},
		{input.Waist, &m.Waist},
		{input.Inseam, &m.Inseam},
		{input.ArmLength, &m.ArmLength},
		{input.LegLength, &m.LegLength},
	}
	for _, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field.raw), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return models.Measurements{}, ErrInvalidInput
		}
		*field.dest = value
	}
	return m, nil
}

// refErr maps a missing referenced row to its not-found sentinel while
// letting other store errors pass through for the retry loop.
func refErr(err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return err
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
