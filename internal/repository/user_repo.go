package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `
	id, public_id, name, username, email, password_hash, user_type,
	profile_picture, portfolio_images, address, phone, website, status,
	unread_messages, created_at, updated_at
`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.PublicID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.UserType,
		&user.ProfilePicture,
		&user.PortfolioImages,
		&user.Address,
		&user.Phone,
		&user.Website,
		&user.Status,
		&user.UnreadMessages,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			public_id, name, username, email, password_hash, user_type,
			profile_picture, portfolio_images, address, phone, website, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, '{}'), $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		user.PublicID,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.UserType,
		user.ProfilePicture,
		user.PortfolioImages,
		user.Address,
		user.Phone,
		user.Website,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE public_id = $1`

	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, publicID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type UpdateUserInput struct {
	Name     string
	Username string
	Phone    string
	Website  string
	Address  models.Address
}

func (r *UserRepository) Update(ctx context.Context, id int64, input UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $2, username = $3, phone = $4, website = $5, address = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var user models.User
	err := scanUser(r.db.QueryRow(ctx, query,
		id, input.Name, input.Username, input.Phone, input.Website, input.Address,
	), &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET profile_picture = $2, updated_at = NOW()
		WHERE id = $1
	`, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) AddPortfolioImages(ctx context.Context, id int64, urls []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET portfolio_images = portfolio_images || $2, updated_at = NOW()
		WHERE id = $1
	`, id, urls)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) RemovePortfolioImage(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET portfolio_images = array_remove(portfolio_images, $2), updated_at = NOW()
		WHERE id = $1
	`, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementUnread bumps the denormalized unread-message counter by one.
// The counter is a cache; the authoritative count lives in the messages
// table.
func (r *UserRepository) IncrementUnread(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET unread_messages = unread_messages + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DecrementUnread lowers the cached counter by the given amount, clamped
// at zero.
func (r *UserRepository) DecrementUnread(ctx context.Context, id int64, by int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET unread_messages = GREATEST(unread_messages - $2, 0), updated_at = NOW()
		WHERE id = $1
	`, id, by)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) Summary(ctx context.Context, id int64) (*models.UserSummary, error) {
	query := `
		SELECT id, name, email, profile_picture
		FROM users
		WHERE id = $1
	`

	var summary models.UserSummary
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
