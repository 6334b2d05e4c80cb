package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

// Timestamps are coalesced because rows imported from the legacy catalog
// may predate the columns; BackfillTimestamps repairs them.
const productColumns = `
	id, name, brand_id, brand_name, designer_id, category, price,
	description, search_count, images, sizes, colors,
	COALESCE(created_at, 'epoch'::timestamptz),
	COALESCE(updated_at, 'epoch'::timestamptz)
`

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.BrandID,
		&p.BrandName,
		&p.DesignerID,
		&p.Category,
		&p.Price,
		&p.Description,
		&p.SearchCount,
		&p.Images,
		&p.Sizes,
		&p.Colors,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (
			name, brand_id, brand_name, designer_id, category, price,
			description, search_count, images, sizes, colors
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			COALESCE($9, '{}'), COALESCE($10, '{}'), COALESCE($11, '{}'))
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		p.Name,
		p.BrandID,
		p.BrandName,
		p.DesignerID,
		p.Category,
		p.Price,
		p.Description,
		p.SearchCount,
		p.Images,
		p.Sizes,
		p.Colors,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	if err := scanProduct(r.db.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC, id DESC
	`
	return r.queryProducts(ctx, query, from, to)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, id int64, p *models.Product) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $2, brand_id = $3, brand_name = $4, designer_id = $5,
		    category = $6, price = $7, description = $8,
		    images = COALESCE($9, '{}'), sizes = COALESCE($10, '{}'),
		    colors = COALESCE($11, '{}'), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var updated models.Product
	err := scanProduct(r.db.QueryRow(ctx, query,
		id, p.Name, p.BrandID, p.BrandName, p.DesignerID,
		p.Category, p.Price, p.Description, p.Images, p.Sizes, p.Colors,
	), &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// BackfillTimestamps stamps rows imported before timestamps existed.
func (r *ProductRepository) BackfillTimestamps(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET created_at = NOW(), updated_at = NOW()
		WHERE created_at IS NULL
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *ProductRepository) Summary(ctx context.Context, id int64) (*models.ProductSummary, error) {
	query := `
		SELECT id, name, price, images
		FROM products
		WHERE id = $1
	`

	var summary models.ProductSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&summary.ID,
		&summary.Name,
		&summary.Price,
		&summary.Images,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
