// Package fsblob is a local-filesystem driven.BlobStore. None of the
// examples' dependency set includes an object-storage client (no AWS/GCS
// SDK), so this adapter is plain stdlib os/filepath — see DESIGN.md.
package fsblob

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store roots every path under a base directory (e.g. the app's data dir's
// "raw/" tree).
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir. baseDir is created lazily on first
// write.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) resolve(path string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(path))
}

// Write stores data at path, creating parent directories as needed.
func (s *Store) Write(_ context.Context, path string, data []byte) error {
	full := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// Read returns the bytes at path.
func (s *Store) Read(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(s.resolve(path))
}

// Exists reports whether path has been written.
func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(s.resolve(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Delete removes path, treating an already-missing file as success.
func (s *Store) Delete(_ context.Context, path string) error {
	err := os.Remove(s.resolve(path))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
