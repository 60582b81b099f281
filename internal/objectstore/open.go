// ABOUTME: Object store selection from configuration
// ABOUTME: Returns the S3 store or a directory-backed local store
package objectstore

import (
	"context"
	"fmt"

	"github.com/harper/abmodel/internal/config"
)

// Store backends
const (
	BackendS3    = "s3"
	BackendLocal = "local"
)

// Store moves objects between a bucket and the local filesystem
type Store interface {
	Fetch(ctx context.Context, bucket, key, localPath string) error
	Put(ctx context.Context, localPath, bucket, key string) error
}

// Open returns the store selected by cfg.ObjectStore
func Open(cfg *config.Config) (Store, error) {
	switch cfg.ObjectStore {
	case BackendS3, "":
		return NewS3(S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			UseSSL:       cfg.S3UseSSL,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			SessionToken: cfg.S3SessionToken,
		})
	case BackendLocal:
		return NewLocal(cfg.LocalStoreRoot), nil
	default:
		return nil, fmt.Errorf("unknown object store %q", cfg.ObjectStore)
	}
}
