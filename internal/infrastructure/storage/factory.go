package storage

import (
	"context"
	"fmt"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ObjectStorage is the common surface of the local and S3 stores
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
}

var (
	_ ObjectStorage = (*S3ObjectStorage)(nil)
	_ ObjectStorage = (*LocalObjectStorage)(nil)
)

// New builds the object store selected by cfg.Storage.Driver
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ObjectStorage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		s3Storage, err := NewS3ObjectStorage(ctx, &cfg.Storage.S3, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 object storage", zap.String("bucket", s3Storage.Bucket()))
		return s3Storage, nil
	case "local", "":
		local, err := NewLocalObjectStorage(cfg.Media.Root)
		if err != nil {
			return nil, err
		}
		logger.Info("Using local object storage", zap.String("root", local.Root()))
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
