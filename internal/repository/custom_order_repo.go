package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

const customOrderColumns = `
	id, order_id, designer_id, user_id, brand_id, product_id, full_name,
	phone, email, address, garment_type, occasion, fabric, color, pattern,
	fitting, measurements, special_instructions, delivery_preference,
	payment_method, rush_order, consultation_date, status, created_at,
	updated_at
`

type CustomOrderRepository struct {
	db DBTX
}

func NewCustomOrderRepository(db DBTX) *CustomOrderRepository {
	return &CustomOrderRepository{db: db}
}

func scanCustomOrder(row pgx.Row, o *models.CustomOrder) error {
	return row.Scan(
		&o.ID,
		&o.OrderID,
		&o.DesignerID,
		&o.UserID,
		&o.BrandID,
		&o.ProductID,
		&o.FullName,
		&o.Phone,
		&o.Email,
		&o.Address,
		&o.GarmentType,
		&o.Occasion,
		&o.Fabric,
		&o.Color,
		&o.Pattern,
		&o.Fitting,
		&o.Measurements,
		&o.SpecialInstructions,
		&o.DeliveryPreference,
		&o.PaymentMethod,
		&o.RushOrder,
		&o.ConsultationDate,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

// LatestOrderID returns the highest order_id carrying the given month
// prefix, or "" when the month has no orders yet. The caller races with
// concurrent creators; the unique index on order_id is what actually
// enforces uniqueness.
func (r *CustomOrderRepository) LatestOrderID(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT order_id
		FROM custom_orders
		WHERE order_id LIKE $1 || '%'
		ORDER BY order_id DESC
		LIMIT 1
	`

	var orderID string
	err := r.db.QueryRow(ctx, query, prefix).Scan(&orderID)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (r *CustomOrderRepository) Create(ctx context.Context, o *models.CustomOrder) error {
	query := `
		INSERT INTO custom_orders (
			order_id, designer_id, user_id, brand_id, product_id, full_name,
			phone, email, address, garment_type, occasion, fabric, color,
			pattern, fitting, measurements, special_instructions,
			delivery_preference, payment_method, rush_order,
			consultation_date, status
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		o.OrderID,
		o.DesignerID,
		o.UserID,
		o.BrandID,
		o.ProductID,
		o.FullName,
		o.Phone,
		o.Email,
		o.Address,
		o.GarmentType,
		o.Occasion,
		o.Fabric,
		o.Color,
		o.Pattern,
		o.Fitting,
		o.Measurements,
		o.SpecialInstructions,
		o.DeliveryPreference,
		o.PaymentMethod,
		o.RushOrder,
		o.ConsultationDate,
		o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *CustomOrderRepository) GetByID(ctx context.Context, id int64) (*models.CustomOrder, error) {
	query := `SELECT ` + customOrderColumns + ` FROM custom_orders WHERE id = $1`

	var o models.CustomOrder
	if err := scanCustomOrder(r.db.QueryRow(ctx, query, id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

type CustomOrderFilter struct {
	DesignerID int64
	UserID     int64
	Status     string
}

func (r *CustomOrderRepository) List(ctx context.Context, filter CustomOrderFilter) ([]models.CustomOrder, error) {
	query := `
		SELECT ` + customOrderColumns + `
		FROM custom_orders
		WHERE ($1 = 0 OR designer_id = $1)
		  AND ($2 = 0 OR user_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, filter.DesignerID, filter.UserID, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.CustomOrder, 0)
	for rows.Next() {
		var o models.CustomOrder
		if err := scanCustomOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *CustomOrderRepository) Update(ctx context.Context, id int64, o *models.CustomOrder) (*models.CustomOrder, error) {
	query := `
		UPDATE custom_orders
		SET full_name = $2, phone = $3, email = $4, address = $5,
		    garment_type = $6, occasion = $7, fabric = $8, color = $9,
		    pattern = $10, fitting = $11, measurements = $12,
		    special_instructions = $13, delivery_preference = $14,
		    payment_method = $15, rush_order = $16, consultation_date = $17,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + customOrderColumns

	var updated models.CustomOrder
	err := scanCustomOrder(r.db.QueryRow(ctx, query,
		id, o.FullName, o.Phone, o.Email, o.Address,
		o.GarmentType, o.Occasion, o.Fabric, o.Color,
		o.Pattern, o.Fitting, o.Measurements,
		o.SpecialInstructions, o.DeliveryPreference,
		o.PaymentMethod, o.RushOrder, o.ConsultationDate,
	), &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CustomOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.CustomOrder, error) {
	query := `
		UPDATE custom_orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + customOrderColumns

	var updated models.CustomOrder
	if err := scanCustomOrder(r.db.QueryRow(ctx, query, id, status), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CustomOrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM custom_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
