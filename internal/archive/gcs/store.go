// Package gcs archives CSV artifacts to a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// Store implements archive.Store against a GCS bucket.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewStore initializes a client and verifies the bucket is reachable,
// failing fast on bad configuration. Authentication uses Application
// Default Credentials.
func NewStore(ctx context.Context, bucket, prefix string, logger *zap.Logger) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("failed to close gcs client after bucket check failure", zap.Error(cerr))
		}
		return nil, fmt.Errorf("get gcs bucket %q attributes: %w", bucket, err)
	}

	return &Store{client: client, bucket: bucket, prefix: prefix, logger: logger}, nil
}

// Save uploads the artifact bytes under the configured prefix.
func (s *Store) Save(ctx context.Context, objectName string, data []byte) error {
	if s.prefix != "" {
		objectName = s.prefix + "/" + objectName
	}
	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = "text/csv; charset=utf-8"

	if _, err := wc.Write(data); err != nil {
		if cerr := wc.Close(); cerr != nil {
			s.logger.Warn("failed to close gcs writer after write failure", zap.Error(cerr))
		}
		return fmt.Errorf("write gcs object %s: %w", objectName, err)
	}
	// Close finalizes the upload and flushes buffered data.
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close gcs writer for %s: %w", objectName, err)
	}

	s.logger.Info("archived csv artifact",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName))
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close gcs client: %w", err)
	}
	return nil
}
