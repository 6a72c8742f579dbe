package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	MockPutObject    func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	MockDeleteObject func(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.MockPutObject(ctx, params, optFns...)
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return m.MockDeleteObject(ctx, params, optFns...)
}

func TestPutReturnsBucketURL(t *testing.T) {
	var gotKey string
	var gotBody []byte
	store := &BlobStore{
		Bucket: "portfolio-files",
		Region: "us-east-1",
		Client: &mockS3Client{
			MockPutObject: func(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
				gotKey = *params.Key
				body, err := io.ReadAll(params.Body)
				require.NoError(t, err)
				gotBody = body
				return &s3.PutObjectOutput{}, nil
			},
		},
	}

	url, err := store.Put(context.Background(), []byte("payload"), BlobMetadata{FileName: "cv.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), gotBody)
	require.True(t, strings.HasPrefix(url, "https://portfolio-files.s3.us-east-1.amazonaws.com/uploads/"))
	require.True(t, strings.HasSuffix(url, "/cv.pdf"))
	require.True(t, strings.HasPrefix(gotKey, "uploads/"))
}

func TestDeleteParsesKeyFromURL(t *testing.T) {
	var gotKey string
	store := &BlobStore{
		Bucket: "portfolio-files",
		Region: "us-east-1",
		Client: &mockS3Client{
			MockDeleteObject: func(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
				gotKey = *params.Key
				return &s3.DeleteObjectOutput{}, nil
			},
		},
	}

	err := store.Delete(context.Background(), "https://portfolio-files.s3.us-east-1.amazonaws.com/uploads/abc/cv.pdf")
	require.NoError(t, err)
	require.Equal(t, "uploads/abc/cv.pdf", gotKey)
}

func TestDeleteRejectsForeignURL(t *testing.T) {
	store := &BlobStore{Bucket: "portfolio-files", Region: "us-east-1", Client: &mockS3Client{}}

	err := store.Delete(context.Background(), "https://other-bucket.s3.us-east-1.amazonaws.com/uploads/abc/cv.pdf")
	require.Error(t, err)
}
