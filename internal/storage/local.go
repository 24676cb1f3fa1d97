package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"contacts_backend/internal/config"
)

// LocalStorage keeps files on the local filesystem under a base directory,
// served as static files by the HTTP layer.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg *config.Config) (*LocalStorage, error) {
	basePath := cfg.Storage.BasePath

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  cfg.Storage.BaseURL,
	}, nil
}

// BasePath returns the root directory files are written under.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

func (s *LocalStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	fullPath := filepath.Join(s.basePath, path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath := filepath.Join(s.basePath, path)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(path string) string {
	if s.baseURL == "" {
		return "/" + path
	}
	return fmt.Sprintf("%s/%s", s.baseURL, path)
}
