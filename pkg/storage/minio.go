// Package storage provides object storage for job photos backed by any
// S3-compatible endpoint.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/config"
	"github.com/airkon-pratama/vendor-portal/pkg/retry"
)

// ObjectStore defines the three operations the portal needs from object
// storage: upload by generated name, removal (submission rollback), and
// public-URL resolution of a stored path.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	PublicURL(path string) string
}

// MinioStore implements ObjectStore against an S3-compatible backend.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// NewMinioStore creates an object store client and ensures the photo bucket
// exists.
func NewMinioStore(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	store := &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        logger.Named("storage"),
	}

	// Storage may still be coming up alongside the portal.
	exists, err := retry.DoWithResult(ctx, nil, func() (bool, error) {
		return client.BucketExists(ctx, cfg.Bucket)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		err := retry.DoIfRetryable(ctx, nil, func() error {
			return client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		store.logger.Info("Created photo bucket", zap.String("bucket", cfg.Bucket))
	}

	return store, nil
}

// Upload stores an object under the given name and returns the storage path
// that gets persisted on the report.
func (s *MinioStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", objectName, err)
	}

	s.logger.Debug("Uploaded photo",
		zap.String("object", objectName),
		zap.Int64("size", info.Size))

	return objectName, nil
}

// Remove deletes an object. Used to roll back uploads of an aborted
// submission.
func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %q: %w", objectName, err)
	}
	return nil
}

// PublicURL resolves a stored object path to its externally reachable URL.
func (s *MinioStore) PublicURL(path string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(path, "/")
}

// Ensure MinioStore implements ObjectStore at compile time.
var _ ObjectStore = (*MinioStore)(nil)
