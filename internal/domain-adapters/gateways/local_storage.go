package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements the Storage interface on the local filesystem.
// Rename maps to os.Rename, which is atomic on POSIX filesystems: a
// concurrent reader of the destination path sees either the old or the
// new content in full, never a partial file.
type LocalStorage struct{}

// NewLocalStorage creates a new local-disk storage adapter
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// Open opens the file at path for reading
func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	//nolint:gosec // G304: artifact paths come from version records
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Create creates the file at path for writing, making parent directories
// as needed
func (s *LocalStorage) Create(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	//nolint:gosec // G304: temporary output paths are pipeline-generated
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}

// Rename atomically replaces newPath with the file at oldPath
func (s *LocalStorage) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// Remove deletes the file at path
func (s *LocalStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// CalculateChecksum calculates the SHA256 checksum of a file.
// Used by the verify command to compare artifact bytes before and after
// signing operations.
func (s *LocalStorage) CalculateChecksum(path string) (string, error) {
	//nolint:gosec // G304: file path is user-provided for checksum calculation
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
