package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

func TestOrderIDPrefixUsesUTCMonth(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC; the prefix must not
	// depend on the server's zone.
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 8, 31, 23, 30, 0, 0, loc)

	if got := orderIDPrefix(now); got != "CO2609" {
		t.Fatalf("expected CO2609, got %q", got)
	}
}

func TestNextOrderID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		latest string
		want   string
	}{
		{"empty month starts at one", "CO2609", "", "CO26090001"},
		{"increments latest", "CO2609", "CO26090041", "CO26090042"},
		{"keeps leading zeros", "CO2609", "CO26090009", "CO26090010"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nextOrderID(tc.prefix, tc.latest)
			if err != nil {
				t.Fatalf("nextOrderID: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNextOrderIDRejectsMalformedLatest(t *testing.T) {
	for _, latest := range []string{"CO2609", "CO260900001", "CO2609abcd", "XX26090001"} {
		if _, err := nextOrderID("CO2609", latest); err == nil {
			t.Fatalf("expected error for latest %q", latest)
		}
	}
}

func TestParseMeasurements(t *testing.T) {
	input := MeasurementsInput{
		Chest:     "96.5",
		Shoulder:  "44",
		Waist:     " 82 ",
		Inseam:    "78.25",
		ArmLength: "61",
		LegLength: "99",
	}

	m, err := parseMeasurements(input)
	if err != nil {
		t.Fatalf("parseMeasurements: %v", err)
	}
	if m.Chest != 96.5 || m.Waist != 82 || m.Inseam != 78.25 {
		t.Fatalf("unexpected measurements: %+v", m)
	}
}

func TestParseMeasurementsRejectsBadValues(t *testing.T) {
	base := MeasurementsInput{
		Chest: "96", Shoulder: "44", Waist: "82",
		Inseam: "78", ArmLength: "61", LegLength: "99",
	}

	for _, bad := range []string{"", "wide", "NaN", "Inf", "-Inf"} {
		input := base
		input.Chest = bad
		if _, err := parseMeasurements(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for chest %q, got %v", bad, err)
		}
	}
}

func TestWithRetryStopsOnSuccess(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 5, time.Millisecond, func(time.Duration) {}, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryDelaysGrowStrictly(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	err := withRetry(context.Background(), 5, 200*time.Millisecond,
		func(d time.Duration) { delays = append(delays, d) },
		func() error {
			attempts++
			return errors.New("transient")
		})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 5 {
		t.Fatalf("expected exactly 5 attempts, got %d", attempts)
	}
	if len(delays) != 4 {
		t.Fatalf("expected 4 sleeps, got %d", len(delays))
	}
	for i := 1; i < len(delays); i++ {
		if delays[i] <= delays[i-1] {
			t.Fatalf("delays must grow strictly: %v", delays)
		}
	}
}

func TestWithRetryDoesNotRetryValidationErrors(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 5, time.Millisecond, func(time.Duration) {}, func() error {
		attempts++
		return ErrInvalidInput
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

// scriptedDB fakes the transactional store for the creation workflow. It
// routes each statement by shape and can lose a configured number of
// inserts to a concurrent creator.
type scriptedDB struct {
	latest      string
	failInserts int
	refErr      error

	beginCalls int
	commits    int
	insertedID []string
}

func (db *scriptedDB) Begin(_ context.Context) (pgx.Tx, error) {
	db.beginCalls++
	return &scriptedTx{db: db}, nil
}

func (db *scriptedDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected exec: " + sql)
}

func (db *scriptedDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query: " + sql)
}

func (db *scriptedDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return (&scriptedTx{db: db}).QueryRow(ctx, sql, args...)
}

type scriptedTx struct {
	pgx.Tx
	db *scriptedDB
}

func (tx *scriptedTx) Commit(_ context.Context) error {
	tx.db.commits++
	return nil
}

func (tx *scriptedTx) Rollback(_ context.Context) error {
	return nil
}

func (tx *scriptedTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db := tx.db
	switch {
	case strings.Contains(sql, "LIKE"):
		return scriptedRow{scan: func(dest ...any) error {
			if db.latest == "" {
				return pgx.ErrNoRows
			}
			*dest[0].(*string) = db.latest
			return nil
		}}
	case strings.Contains(sql, "INSERT INTO custom_orders"):
		orderID := args[0].(string)
		db.insertedID = append(db.insertedID, orderID)
		return scriptedRow{scan: func(dest ...any) error {
			if len(db.insertedID) <= db.failInserts {
				// The concurrent creator committed first and now owns
				// the id this attempt read.
				db.latest = orderID
				return &pgconn.PgError{Code: "23505", ConstraintName: "idx_custom_orders_order_id"}
			}
			*dest[0].(*int64) = 101
			*dest[1].(*time.Time) = time.Now().UTC()
			*dest[2].(*time.Time) = time.Now().UTC()
			return nil
		}}
	case strings.Contains(sql, "FROM designers"):
		return scriptedRow{scan: func(dest ...any) error {
			if db.refErr != nil {
				return db.refErr
			}
			*dest[0].(*int64) = 7
			*dest[1].(*string) = "Maheen"
			*dest[2].(*string) = "maheen@example.com"
			*dest[3].(*string) = ""
			return nil
		}}
	case strings.Contains(sql, "FROM users"):
		return scriptedRow{scan: func(dest ...any) error {
			*dest[0].(*int64) = 3
			*dest[1].(*string) = "Asad"
			*dest[2].(*string) = "asad@example.com"
			*dest[3].(*string) = ""
			return nil
		}}
	case strings.Contains(sql, "FROM brands"):
		return scriptedRow{scan: func(dest ...any) error {
			*dest[0].(*int64) = 5
			*dest[1].(*string) = "Khaadi"
			*dest[2].(*string) = "contact@khaadi.example"
			*dest[3].(*string) = ""
			return nil
		}}
	case strings.Contains(sql, "FROM products"):
		return scriptedRow{scan: func(dest ...any) error {
			*dest[0].(*int64) = 11
			*dest[1].(*string) = "Kurta"
			*dest[2].(*float64) = 4500
			*dest[3].(*[]string) = nil
			return nil
		}}
	}
	return scriptedRow{scan: func(...any) error {
		return errors.New("unexpected statement: " + sql)
	}}
}

type scriptedRow struct {
	scan func(dest ...any) error
}

func (r scriptedRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

func newScriptedService(db *scriptedDB) (*CustomOrderService, *[]time.Duration) {
	service := NewCustomOrderService(db, repository.NewCustomOrderRepository(db))
	service.now = func() time.Time {
		return time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	}
	delays := &[]time.Duration{}
	service.sleep = func(d time.Duration) {
		*delays = append(*delays, d)
	}
	return service, delays
}

func validCreateInput() CreateCustomOrderInput {
	return CreateCustomOrderInput{
		DesignerID:  7,
		UserID:      3,
		BrandID:     5,
		ProductID:   11,
		FullName:    "Asad Raza",
		Phone:       "+92-300-0000000",
		Email:       "asad@example.com",
		Address:     "Lahore",
		GarmentType: "sherwani",
		Occasion:    "wedding",
		Fabric:      "silk",
		Color:       "maroon",
		Pattern:     "plain",
		Fitting:     "slim",
		Measurements: MeasurementsInput{
			Chest: "96", Shoulder: "44", Waist: "82",
			Inseam: "78", ArmLength: "61", LegLength: "99",
		},
		DeliveryPreference: "pickup",
		PaymentMethod:      "cash_on_delivery",
		ConsultationDate:   time.Date(2026, 9, 20, 15, 0, 0, 0, time.UTC),
	}
}

func TestCreateCustomOrderAllocatesFirstIDOfMonth(t *testing.T) {
	db := &scriptedDB{}
	service, delays := newScriptedService(db)

	detail, err := service.CreateCustomOrder(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateCustomOrder: %v", err)
	}
	if detail.OrderID != "CO26090001" {
		t.Fatalf("expected CO26090001, got %q", detail.OrderID)
	}
	if detail.Status != "pending" {
		t.Fatalf("expected pending, got %q", detail.Status)
	}
	if detail.Designer == nil || detail.Designer.Name != "Maheen" {
		t.Fatalf("expected resolved designer, got %+v", detail.Designer)
	}
	if db.beginCalls != 1 || db.commits != 1 {
		t.Fatalf("expected one committed transaction, got begin=%d commit=%d", db.beginCalls, db.commits)
	}
	if len(*delays) != 0 {
		t.Fatalf("expected no sleeps, got %v", *delays)
	}
}

func TestCreateCustomOrderRegeneratesIDAfterDuplicate(t *testing.T) {
	db := &scriptedDB{failInserts: 1}
	service, delays := newScriptedService(db)

	detail, err := service.CreateCustomOrder(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateCustomOrder: %v", err)
	}
	if detail.OrderID != "CO26090002" {
		t.Fatalf("expected fresh id CO26090002 after losing CO26090001, got %q", detail.OrderID)
	}
	if db.beginCalls != 2 {
		t.Fatalf("expected 2 attempts, got %d", db.beginCalls)
	}
	if db.commits != 1 {
		t.Fatalf("expected exactly one commit, got %d", db.commits)
	}
	if len(*delays) != 1 || (*delays)[0] != orderRetryUnit {
		t.Fatalf("expected a single %v sleep, got %v", orderRetryUnit, *delays)
	}
}

func TestCreateCustomOrderGivesUpAfterBudget(t *testing.T) {
	db := &scriptedDB{failInserts: 1000}
	service, delays := newScriptedService(db)

	_, err := service.CreateCustomOrder(context.Background(), validCreateInput())
	if !errors.Is(err, ErrDuplicateOrderID) {
		t.Fatalf("expected ErrDuplicateOrderID, got %v", err)
	}
	if db.beginCalls != orderCreateAttempts {
		t.Fatalf("expected %d attempts, got %d", orderCreateAttempts, db.beginCalls)
	}
	if db.commits != 0 {
		t.Fatalf("expected no commits, got %d", db.commits)
	}
	if len(*delays) != orderCreateAttempts-1 {
		t.Fatalf("expected %d sleeps, got %d", orderCreateAttempts-1, len(*delays))
	}
	for i := 1; i < len(*delays); i++ {
		if (*delays)[i] <= (*delays)[i-1] {
			t.Fatalf("delays must grow strictly: %v", *delays)
		}
	}
}

func TestCreateCustomOrderRejectsInvalidInputWithoutTransaction(t *testing.T) {
	db := &scriptedDB{}
	service, _ := newScriptedService(db)

	input := validCreateInput()
	input.DesignerID = 0
	if _, err := service.CreateCustomOrder(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	input = validCreateInput()
	input.Measurements.Waist = "very wide"
	if _, err := service.CreateCustomOrder(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if db.beginCalls != 0 {
		t.Fatalf("validation failures must not open transactions, got %d", db.beginCalls)
	}
}

func TestCreateCustomOrderDoesNotRetryMissingReference(t *testing.T) {
	db := &scriptedDB{refErr: pgx.ErrNoRows}
	service, delays := newScriptedService(db)

	_, err := service.CreateCustomOrder(context.Background(), validCreateInput())
	if !errors.Is(err, ErrDesignerNotFound) {
		t.Fatalf("expected ErrDesignerNotFound, got %v", err)
	}
	if db.beginCalls != 1 {
		t.Fatalf("missing references must not be retried, got %d attempts", db.beginCalls)
	}
	if len(*delays) != 0 {
		t.Fatalf("expected no sleeps, got %v", *delays)
	}
}
