package roles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	Upsert(ctx context.Context, role Role) (Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	GetDefault(ctx context.Context) (*Role, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert inserts the role or refreshes its bitmask and default flag by name.
func (r *Repository) Upsert(ctx context.Context, role Role) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, permissions, is_default)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET permissions = EXCLUDED.permissions,
		    is_default  = EXCLUDED.is_default,
		    updated_at  = now()
		RETURNING id, name, permissions, is_default, created_at, updated_at`,
		role.Name, int16(role.Permissions), role.IsDefault)
	return scanRole(row)
}

// GetByName fetches a role by its unique name.
func (r *Repository) GetByName(ctx context.Context, name string) (*Role, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, permissions, is_default, created_at, updated_at
		FROM roles WHERE name = $1`, name)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// GetDefault fetches the role assigned to new users.
func (r *Repository) GetDefault(ctx context.Context) (*Role, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, permissions, is_default, created_at, updated_at
		FROM roles WHERE is_default LIMIT 1`)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func scanRole(row pgx.Row) (Role, error) {
	var (
		role Role
		mask int16
	)
	if err := row.Scan(&role.ID, &role.Name, &mask, &role.IsDefault, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return Role{}, err
	}
	role.Permissions = rbac.Permission(uint8(mask))
	return role, nil
}

var _ RepositoryPort = (*Repository)(nil)
