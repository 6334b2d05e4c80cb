package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

const orderColumns = `
	id, order_id, user_id, total_price, order_date, status,
	payment_method, payment_status, shipping_address, items, created_at
`

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(
		&o.ID,
		&o.OrderID,
		&o.UserID,
		&o.TotalPrice,
		&o.OrderDate,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.ShippingAddress,
		&o.Items,
		&o.CreatedAt,
	)
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO orders (
			order_id, user_id, total_price, order_date, status,
			payment_method, payment_status, shipping_address, items
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, '[]'))
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		o.OrderID,
		o.UserID,
		o.TotalPrice,
		o.OrderDate,
		o.Status,
		o.PaymentMethod,
		o.PaymentStatus,
		o.ShippingAddress,
		o.Items,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o models.Order
	if err := scanOrder(r.db.QueryRow(ctx, query, id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, id int64, o *models.Order) (*models.Order, error) {
	query := `
		UPDATE orders
		SET total_price = $2, status = $3, payment_method = $4,
		    payment_status = $5, shipping_address = $6,
		    items = COALESCE($7, '[]')
		WHERE id = $1
		RETURNING ` + orderColumns

	var updated models.Order
	err := scanOrder(r.db.QueryRow(ctx, query,
		id, o.TotalPrice, o.Status, o.PaymentMethod,
		o.PaymentStatus, o.ShippingAddress, o.Items,
	), &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $2
		WHERE id = $1
		RETURNING ` + orderColumns

	var updated models.Order
	if err := scanOrder(r.db.QueryRow(ctx, query, id, status), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *OrderRepository) UpdatePayment(ctx context.Context, id int64, paymentStatus, status string) (*models.Order, error) {
	query := `
		UPDATE orders
		SET payment_status = $2, status = $3
		WHERE id = $1
		RETURNING ` + orderColumns

	var updated models.Order
	if err := scanOrder(r.db.QueryRow(ctx, query, id, paymentStatus, status), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
