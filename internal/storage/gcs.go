package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/gcp"
)

// GCSStore keeps blobs as objects in one Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string, cfg config.GCPConfig) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, gcp.ClientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs finalize %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBlobNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	return rc, nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// New picks the BlobStore named by storage.driver.
func New(ctx context.Context, cfg config.StorageConfig, gcpCfg config.GCPConfig) (domain.BlobStore, error) {
	switch cfg.Driver {
	case "gcs":
		return NewGCSStore(ctx, cfg.Bucket, gcpCfg)
	case "fs", "":
		return NewFSStore(cfg.BaseDir)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
