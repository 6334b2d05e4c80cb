package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

const brandColumns = `
	id, brand_id, name, username, email, description, logo, cover_image,
	social_media, created_at, updated_at
`

type BrandRepository struct {
	db DBTX
}

func NewBrandRepository(db DBTX) *BrandRepository {
	return &BrandRepository{db: db}
}

func scanBrand(row pgx.Row, b *models.Brand) error {
	return row.Scan(
		&b.ID,
		&b.BrandID,
		&b.Name,
		&b.Username,
		&b.Email,
		&b.Description,
		&b.Logo,
		&b.CoverImage,
		&b.SocialMedia,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *BrandRepository) Create(ctx context.Context, b *models.Brand) error {
	query := `
		INSERT INTO brands (
			brand_id, name, username, email, description, logo,
			cover_image, social_media
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		b.BrandID,
		b.Name,
		b.Username,
		b.Email,
		b.Description,
		b.Logo,
		b.CoverImage,
		b.SocialMedia,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`

	var b models.Brand
	if err := scanBrand(r.db.QueryRow(ctx, query, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := make([]models.Brand, 0)
	for rows.Next() {
		var b models.Brand
		if err := scanBrand(rows, &b); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) Update(ctx context.Context, id int64, b *models.Brand) (*models.Brand, error) {
	query := `
		UPDATE brands
		SET name = $2, username = $3, email = $4, description = $5,
		    logo = $6, cover_image = $7, social_media = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + brandColumns

	var updated models.Brand
	err := scanBrand(r.db.QueryRow(ctx, query,
		id, b.Name, b.Username, b.Email, b.Description,
		b.Logo, b.CoverImage, b.SocialMedia,
	), &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *BrandRepository) Summary(ctx context.Context, id int64) (*models.BrandSummary, error) {
	query := `
		SELECT id, name, email, logo
		FROM brands
		WHERE id = $1
	`

	var summary models.BrandSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&summary.ID,
		&summary.Name,
		&summary.Email,
		&summary.Logo,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
