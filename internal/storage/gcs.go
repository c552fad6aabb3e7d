package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// GCSStore keeps uploads in a Google Cloud Storage bucket. Keys follow the
// userId/timestamp_filename convention so per-user objects group together.
// Application Default Credentials are assumed.
type GCSStore struct {
	client *gcs.Client
	bucket string
	logger *zap.Logger
}

func NewGCSStore(ctx context.Context, bucket string, logger *zap.Logger) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket, logger: logger}, nil
}

func (s *GCSStore) Save(ctx context.Context, r io.Reader, key string) (*Object, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to copy file to bucket writer: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	return &Object{
		Path: key,
		URL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key),
	}, nil
}

func (s *GCSStore) Remove(ctx context.Context, path string) error {
	if err := s.client.Bucket(s.bucket).Object(path).Delete(ctx); err != nil && err != gcs.ErrObjectNotExist {
		s.logger.Warn("Failed to remove object", zap.String("object", path), zap.Error(err))
		return err
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
