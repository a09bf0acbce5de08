package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RepositoryPort abstracts post persistence.
type RepositoryPort interface {
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, int, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]Post, int, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Insert(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
}

// PGRepository implements RepositoryPort backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository builds a PGRepository instance.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const postColumns = `p.id, p.title, p.slug, p.body, p.body_html, p.author_id, u.username, p.created_at, p.updated_at`

// GetBySlug returns the post with the given slug.
func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1`, slug)

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: post %q", shared.ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("posts: get by slug: %w", err)
	}
	return post, nil
}

// List returns a page of posts, newest first, with the total count.
func (r *PGRepository) List(ctx context.Context, limit, offset int) ([]Post, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("posts: count: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("posts: list: %w", err)
	}
	defer rows.Close()

	items, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByAuthor returns a page of the author's posts, newest first, with the
// author's total count.
func (r *PGRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]Post, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("posts: count by author: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`, authorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("posts: list by author: %w", err)
	}
	defer rows.Close()

	items, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SlugExists reports whether another post already holds the slug. The
// excludeID carves out the post being edited so an unchanged slug is not
// reported as a collision.
func (r *PGRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("posts: slug exists: %w", err)
	}
	return exists, nil
}

// Insert stores a new post and fills in its generated ID.
func (r *PGRepository) Insert(ctx context.Context, post *Post) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, slug, body, body_html, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		post.Title, post.Slug, post.Body, post.BodyHTML, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("posts: insert: %w", mapSlugConflict(err))
	}
	return nil
}

// Update persists the mutable fields of an existing post.
func (r *PGRepository) Update(ctx context.Context, post *Post) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, slug = $2, body = $3, body_html = $4, updated_at = $5
		WHERE id = $6`,
		post.Title, post.Slug, post.Body, post.BodyHTML, post.UpdatedAt, post.ID)
	if err != nil {
		return fmt.Errorf("posts: update: %w", mapSlugConflict(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %d", shared.ErrNotFound, post.ID)
	}
	return nil
}

func mapSlugConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: slug already in use", shared.ErrDuplicate)
	}
	return err
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.BodyHTML, &p.AuthorID, &p.AuthorUsername, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]Post, error) {
	items := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("posts: scan: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("posts: rows: %w", err)
	}
	return items, nil
}
