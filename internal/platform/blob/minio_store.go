// Package blob provides a MinIO/S3-backed implementation of the
// store.BlobStore interface used for cached audio assets.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/phrazzld/frequency-api/internal/config"
	"github.com/phrazzld/frequency-api/internal/store"
)

// presignTTL is how long returned object URLs stay valid. Audio assets are
// immutable, so clients may cache the resolved URL for the whole session.
const presignTTL = 12 * time.Hour

// MinioStore implements the store.BlobStore interface on top of a
// MinIO-compatible object store.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioStore creates a blob store client from configuration and ensures
// the configured bucket exists.
func NewMinioStore(ctx context.Context, cfg config.BlobConfig, logger *slog.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	s := &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With(slog.String("component", "blob_store")),
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Ensure MinioStore implements store.BlobStore interface
var _ store.BlobStore = (*MinioStore)(nil)

// ensureBucket creates the bucket if it does not already exist.
func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", s.bucket, err)
		}
		s.logger.InfoContext(ctx, "created blob bucket", slog.String("bucket", s.bucket))
	}
	return nil
}

// Get implements store.BlobStore.Get.
// Returns store.ErrNotFound if no object exists at path; otherwise returns
// a presigned URL for the object.
func (s *MinioStore) Get(ctx context.Context, path string) (string, error) {
	_, err := s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return "", store.ErrBlobNotFound
		}
		s.logger.ErrorContext(ctx, "failed to stat object",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to stat object %q: %w", path, err)
	}

	return s.presign(ctx, path)
}

// Put implements store.BlobStore.Put.
func (s *MinioStore) Put(
	ctx context.Context,
	path string,
	data []byte,
	contentType string,
) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		path,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to put object",
			slog.String("path", path),
			slog.Int("size", len(data)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: object %q: %v", store.ErrUpdateFailed, path, err)
	}

	return s.presign(ctx, path)
}

// presign generates a time-limited GET URL for the object at path.
func (s *MinioStore) presign(ctx context.Context, path string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, path, presignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object %q: %w", path, err)
	}
	return u.String(), nil
}
