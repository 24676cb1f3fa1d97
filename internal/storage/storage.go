package storage

import (
	"context"
	"fmt"
	"io"

	"contacts_backend/internal/config"
)

// Storage persists processed avatar files. Paths are relative keys such as
// "avatars/<id>.jpg"; Save overwrites whatever is at the key.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error

	// URL returns the public address serving the file at path.
	URL(path string) string
}

// New builds the storage backend named by the configuration.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
