package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// BlobStorage is the external collaborator holding uploaded binaries.
type BlobStorage interface {
	Put(ctx context.Context, data []byte, meta storage.BlobMetadata) (string, error)
	Delete(ctx context.Context, url string) error
}

// FileService manages uploaded file records and their blobs.
type FileService struct {
	files  repository.FileRepository
	blobs  BlobStorage
	logger *zap.Logger
}

// NewFileService creates the service.
func NewFileService(files repository.FileRepository, blobs BlobStorage, logger *zap.Logger) *FileService {
	return &FileService{files: files, blobs: blobs, logger: logger}
}

// Upload stores the payload in the blob store, then records its metadata.
func (s *FileService) Upload(ctx context.Context, uploaderID, fileName, mimeType string, data []byte) (*domain.FileRecord, error) {
	url, err := s.blobs.Put(ctx, data, storage.BlobMetadata{FileName: fileName, ContentType: mimeType})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	file := &domain.FileRecord{
		FileName:   fileName,
		URL:        url,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		UploaderID: uploaderID,
	}
	if err := s.files.Create(ctx, file); err != nil {
		return nil, apperrors.MapError(err)
	}
	return file, nil
}

// Get returns a file record by ID.
func (s *FileService) Get(ctx context.Context, id string) (*domain.FileRecord, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("file", map[string]any{"file_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return file, nil
}

// List returns all file records, newest first.
func (s *FileService) List(ctx context.Context) ([]domain.FileRecord, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return files, nil
}

// Delete removes the blob first, then the record. A blob-store failure is
// logged and swallowed: the record is removed regardless. Lenient cleanup
// is the intended policy, not an oversight.
func (s *FileService) Delete(ctx context.Context, id string) error {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("file", map[string]any{"file_id": id})
		}
		return apperrors.MapError(err)
	}

	if err := s.blobs.Delete(ctx, file.URL); err != nil {
		s.logger.Warn("blob delete failed; removing record anyway",
			zap.String("file_id", file.ID),
			zap.String("url", file.URL),
			zap.Error(err),
		)
	}

	if err := s.files.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("file", map[string]any{"file_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
