package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/jobready/internal/apperr"
)

// FileStore keeps each document in <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, apperr.InvalidFormat("open file store", "data directory is empty", nil)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path of a document.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read implements Store.
func (s *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	if err := checkName("read", name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		return nil, apperr.NotFound("read", fmt.Sprintf("document %s does not exist", name), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Write implements Store. The document is written to a temp file and renamed
// over the old one, so readers never see a partial document.
func (s *FileStore) Write(_ context.Context, name string, data []byte) error {
	if err := checkName("write", name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, s.Path(name)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// Close implements Backend.
func (s *FileStore) Close() error {
	return nil
}
