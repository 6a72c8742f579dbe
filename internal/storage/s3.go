package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-service/internal/config"
)

// S3Client captures the S3 operations the blob store needs.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// BlobMetadata describes an uploaded object.
type BlobMetadata struct {
	FileName    string
	ContentType string
}

// BlobStore stores and deletes binary payloads addressed by URL.
type BlobStore struct {
	Client S3Client
	Bucket string
	Region string
}

// NewBlobStore builds an S3-backed blob store from process configuration.
func NewBlobStore(ctx context.Context, cfg config.BlobConfig) (*BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("BLOB_S3_BUCKET is not defined")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("could not load aws configuration: %w", err)
	}
	return &BlobStore{
		Client: s3.NewFromConfig(awsCfg),
		Bucket: cfg.Bucket,
		Region: cfg.Region,
	}, nil
}

// Put writes the payload under a fresh key and returns its public URL.
func (b *BlobStore) Put(ctx context.Context, data []byte, meta BlobMetadata) (string, error) {
	key := fmt.Sprintf("uploads/%s/%s", uuid.NewString(), meta.FileName)
	input := &s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(b.Bucket),
		Key:    aws.String(key),
	}
	if meta.ContentType != "" {
		input.ContentType = aws.String(meta.ContentType)
	}

	if _, err := b.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("unable to write object: %w", err)
	}
	return b.objectURL(key), nil
}

// Delete removes the object the URL points at. Deleting an object that is
// already gone is not an error.
func (b *BlobStore) Delete(ctx context.Context, url string) error {
	key, err := b.keyFromURL(url)
	if err != nil {
		return err
	}
	_, err = b.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiError smithy.APIError
		if errors.As(err, &apiError) && apiError.ErrorCode() == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("unable to delete object: %w", err)
	}
	return nil
}

func (b *BlobStore) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.Bucket, b.Region, key)
}

func (b *BlobStore) keyFromURL(url string) (string, error) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", b.Bucket, b.Region)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("url %q does not belong to bucket %s", url, b.Bucket)
	}
	return strings.TrimPrefix(url, prefix), nil
}
