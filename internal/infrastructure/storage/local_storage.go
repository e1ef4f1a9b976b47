package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStorage writes objects below a directory that the HTTP server
// exposes under the media URL.
type LocalObjectStorage struct {
	root string
}

// NewLocalObjectStorage creates the root directory when missing
func NewLocalObjectStorage(root string) (*LocalObjectStorage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("media root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &LocalObjectStorage{root: root}, nil
}

// path resolves key inside root, rejecting keys that escape it
func (s *LocalObjectStorage) path(key string) (string, error) {
	if key == "" {
		return "", ErrKeyRequired
	}
	cleaned := filepath.Clean("/" + filepath.FromSlash(key))
	full := filepath.Join(s.root, cleaned)
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return full, nil
}

// Upload writes data to root/key
func (s *LocalObjectStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// DeleteObject removes root/key; a missing file is not an error
func (s *LocalObjectStorage) DeleteObject(_ context.Context, key string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectExists reports whether root/key is a file
func (s *LocalObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	full, err := s.path(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Root returns the directory objects are written to
func (s *LocalObjectStorage) Root() string {
	return s.root
}
