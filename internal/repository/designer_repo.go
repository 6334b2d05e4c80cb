package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

const designerColumns = `
	id, designer_id, name, username, email, bio, profile_picture,
	cover_image, portfolio, social_media, created_at, updated_at
`

type DesignerRepository struct {
	db DBTX
}

func NewDesignerRepository(db DBTX) *DesignerRepository {
	return &DesignerRepository{db: db}
}

func scanDesigner(row pgx.Row, d *models.Designer) error {
	return row.Scan(
		&d.ID,
		&d.DesignerID,
		&d.Name,
		&d.Username,
		&d.Email,
		&d.Bio,
		&d.ProfilePicture,
		&d.CoverImage,
		&d.Portfolio,
		&d.SocialMedia,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func (r *DesignerRepository) Create(ctx context.Context, d *models.Designer) error {
	query := `
		INSERT INTO designers (
			designer_id, name, username, email, bio, profile_picture,
			cover_image, portfolio, social_media
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, '{}'), $9)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		d.DesignerID,
		d.Name,
		d.Username,
		d.Email,
		d.Bio,
		d.ProfilePicture,
		d.CoverImage,
		d.Portfolio,
		d.SocialMedia,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DesignerRepository) GetByID(ctx context.Context, id int64) (*models.Designer, error) {
	query := `SELECT ` + designerColumns + ` FROM designers WHERE id = $1`

	var d models.Designer
	if err := scanDesigner(r.db.QueryRow(ctx, query, id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DesignerRepository) List(ctx context.Context) ([]models.Designer, error) {
	query := `SELECT ` + designerColumns + ` FROM designers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designers := make([]models.Designer, 0)
	for rows.Next() {
		var d models.Designer
		if err := scanDesigner(rows, &d); err != nil {
			return nil, err
		}
		designers = append(designers, d)
	}
	return designers, rows.Err()
}

func (r *DesignerRepository) Update(ctx context.Context, id int64, d *models.Designer) (*models.Designer, error) {
	query := `
		UPDATE designers
		SET name = $2, username = $3, email = $4, bio = $5,
		    profile_picture = $6, cover_image = $7,
		    portfolio = COALESCE($8, '{}'),
		    social_media = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + designerColumns

	var updated models.Designer
	err := scanDesigner(r.db.QueryRow(ctx, query,
		id, d.Name, d.Username, d.Email, d.Bio,
		d.ProfilePicture, d.CoverImage, d.Portfolio, d.SocialMedia,
	), &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DesignerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM designers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DesignerRepository) Summary(ctx context.Context, id int64) (*models.DesignerSummary, error) {
	query := `
		SELECT id, name, email, profile_picture
		FROM designers
		WHERE id = $1
	`

	var summary models.DesignerSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&summary.ID,
		&summary.Name,
		&summary.Email,
		&summary.ProfilePicture,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
