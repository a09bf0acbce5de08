package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Repository defines persistence operations for the credential verifier.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func userQuery(where string) string {
	return `
	SELECT u.id, u.username, u.email, u.password_hash, u.role_id, r.permissions,
	       u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id
	WHERE ` + where
}

// FindByUsername fetches a user with its role bitmask by username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findWhere(ctx, "u.username = $1", username)
}

// FindByEmail fetches a user with its role bitmask by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findWhere(ctx, "u.email = $1", email)
}

// FindByID fetches a user with its role bitmask by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findWhere(ctx, "u.id = $1", id)
}

func (r *PGRepository) findWhere(ctx context.Context, where string, arg any) (*User, error) {
	row := r.pool.QueryRow(ctx, userQuery(where), arg)
	var (
		user User
		mask int16
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.RoleID, &mask, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	user.Permissions = rbac.Permission(uint8(mask))
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
