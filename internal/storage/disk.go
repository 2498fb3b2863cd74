// Package storage persists uploaded bootcamp photos on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bootcamp_directory_backend/platform/config"
)

// PhotoStore saves uploaded photos under stable filenames.
type PhotoStore interface {
	Save(filename string, r io.Reader) error
}

// DiskStore writes photos to the configured upload directory, which the
// router serves statically under /uploads.
type DiskStore struct {
	dir string
}

func NewDiskStore(cfg config.UploadConfig) (*DiskStore, error) {
	dir := cfg.GetFileUploadPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

var _ PhotoStore = (*DiskStore)(nil)

// Dir returns the directory photos are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes to a temporary file first and renames into place, so a
// failed upload never leaves a truncated photo behind.
func (s *DiskStore) Save(filename string, r io.Reader) error {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close photo: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, filename)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store photo: %w", err)
	}
	return nil
}
