// Package storage provides local filesystem storage for uploaded content
// and the fingerprinting used to identify it.
package storage

import (
	"io"
	"os"
	"path/filepath"
)

// localStorage implements the content Storage interface on the local
// filesystem. Files are grouped in per-category directories.
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a localStorage rooted at basePath.
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

func (s *localStorage) path(name, category string) string {
	if category == "" {
		category = "uncategorized"
	}
	return filepath.Join(s.basePath, category, name)
}

// Create creates a new file for writing, making the category directory as
// needed.
func (s *localStorage) Create(name, category string) (io.WriteCloser, error) {
	path := s.path(name, category)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// Open opens a stored file for reading.
func (s *localStorage) Open(name, category string) (io.ReadCloser, error) {
	return os.Open(s.path(name, category))
}

// Stat reports the stored file's metadata.
func (s *localStorage) Stat(name, category string) (os.FileInfo, error) {
	return os.Stat(s.path(name, category))
}

// Delete removes a stored file.
func (s *localStorage) Delete(name, category string) error {
	return os.Remove(s.path(name, category))
}

// Path exposes the absolute location of a stored file for fingerprinting.
func (s *localStorage) Path(name, category string) string {
	return s.path(name, category)
}
