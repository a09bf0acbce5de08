package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, username, email, passwordHash string, roleID int64) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByUsername fetches a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, role_id, created_at, updated_at
		FROM users WHERE username = $1`, username)
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.RoleID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. Uniqueness of username and email is enforced by
// the store; violations surface as validation errors.
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string, roleID int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, role_id, created_at, updated_at`,
		username, email, passwordHash, roleID)
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.RoleID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return nil, fmt.Errorf("%w: email already registered", shared.ErrDuplicate)
			default:
				return nil, fmt.Errorf("%w: username already in use", shared.ErrDuplicate)
			}
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash and refreshes updated_at.
func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
