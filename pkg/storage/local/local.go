package local

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes uploaded files under a base directory on local disk. Writes
// happen synchronously in the request path; callers get back the relative
// path that was persisted.
type Store struct {
	baseDir  string
	maxBytes int64
}

// New constructs a Store rooted at baseDir, creating it when missing.
func New(baseDir string, maxUploadMB int) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	maxBytes := int64(maxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	return &Store{baseDir: baseDir, maxBytes: maxBytes}, nil
}

// MaxBytes returns the configured upload ceiling.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save streams src into a dated file under prefix and returns the relative path.
func (s *Store) Save(prefix, originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	rel := filepath.Join(prefix, time.Now().UTC().Format("2006/01"), name)
	abs := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("creating upload subdir: %w", err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(abs)
		return "", fmt.Errorf("upload exceeds %d bytes", s.maxBytes)
	}

	return rel, nil
}

// Remove deletes a previously saved file; missing files are not an error.
func (s *Store) Remove(rel string) error {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
