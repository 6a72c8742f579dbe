package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// FileRepository persists uploaded file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *domain.FileRecord) error
	GetByID(ctx context.Context, id string) (*domain.FileRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.FileRecord, error)
}

type fileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository returns a Postgres-backed implementation.
func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepository{pool: pool}
}

func (r *fileRepository) Create(ctx context.Context, file *domain.FileRecord) error {
	const query = `
        INSERT INTO file_records (file_name, url, mime_type, size_bytes, uploader_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		file.FileName,
		file.URL,
		file.MimeType,
		file.SizeBytes,
		file.UploaderID,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	const query = `
        SELECT id, file_name, url, mime_type, size_bytes, uploader_id, created_at, updated_at
        FROM file_records WHERE id=$1`

	var file domain.FileRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FileName,
		&file.URL,
		&file.MimeType,
		&file.SizeBytes,
		&file.UploaderID,
		&file.CreatedAt,
		&file.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM file_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fileRepository) List(ctx context.Context) ([]domain.FileRecord, error) {
	const query = `
        SELECT id, file_name, url, mime_type, size_bytes, uploader_id, created_at, updated_at
        FROM file_records ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FileRecord
	for rows.Next() {
		var file domain.FileRecord
		if err := rows.Scan(
			&file.ID,
			&file.FileName,
			&file.URL,
			&file.MimeType,
			&file.SizeBytes,
			&file.UploaderID,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, file)
	}
	return result, rows.Err()
}
