// Package local stores uploaded rental pictures on disk and serves
// them back under /uploads.
package local

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"loftly/internal/domain"
)

type Storage struct {
	dir     string
	baseURL string
}

func NewStorage(dir, baseURL string) *Storage {
	return &Storage{
		dir:     dir,
		baseURL: baseURL,
	}
}

// Store writes the upload under a fresh uuid name, keeping the original
// extension, and returns the public URL.
func (s *Storage) Store(upload *domain.Upload) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(upload.Filename)
	target := filepath.Join(s.dir, name)

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, upload.File); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}

// Dir is the on-disk directory the router serves as /uploads.
func (s *Storage) Dir() string {
	return s.dir
}
