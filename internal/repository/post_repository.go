package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// PostFilter narrows post listings.
type PostFilter struct {
	Status     *domain.PostStatus
	CategoryID *string
}

// PostRepository persists blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) ([]domain.Post, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (title, slug, summary, body, category_id, author_id, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Summary,
		post.Body,
		post.CategoryID,
		post.AuthorID,
		post.Status,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET title=$1, slug=$2, summary=$3, body=$4, category_id=$5, status=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		post.Title,
		post.Slug,
		post.Summary,
		post.Body,
		post.CategoryID,
		post.Status,
		post.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	const query = `
        SELECT id, title, slug, summary, body, category_id, author_id, status, created_at, updated_at
        FROM posts WHERE slug=$1`

	var post domain.Post
	if err := r.pool.QueryRow(ctx, query, slug).Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Summary,
		&post.Body,
		&post.CategoryID,
		&post.AuthorID,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]domain.Post, error) {
	query := `
        SELECT id, title, slug, summary, body, category_id, author_id, status, created_at, updated_at
        FROM posts`
	args := []any{}
	where := ""
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = " WHERE status=$1"
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		if where == "" {
			where = " WHERE category_id=$1"
		} else {
			where += " AND category_id=$2"
		}
	}
	query += where + " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Slug,
			&post.Summary,
			&post.Body,
			&post.CategoryID,
			&post.AuthorID,
			&post.Status,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}
