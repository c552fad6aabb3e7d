package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore keeps uploads on local disk under baseDir. The directory is
// served by the router under /uploads/.
type LocalStore struct {
	baseDir string
	logger  *zap.Logger
}

func NewLocalStore(baseDir string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStore{baseDir: baseDir, logger: logger}, nil
}

func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader, key string) (*Object, error) {
	// Keys are generated upstream; flatten any path separators so a crafted
	// filename cannot escape the upload directory.
	name := filepath.Base(key)
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &Object{Path: path, URL: "/uploads/" + name}, nil
}

func (s *LocalStore) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove uploaded file", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
