// Package store persists the named JSON documents of the engine.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/schemas"
)

// Store reads and fully overwrites named documents. Read returns an
// apperr NotFound error when the document does not exist.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// Backend is a Store that holds resources.
type Backend interface {
	Store
	io.Closer
}

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DataDir     string
	SQLitePath  string
	DatabaseURL string
}

// Open creates the backend named by opts.Backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.DataDir)
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.DataDir, "jobready.db")
		}
		return NewSQLiteStore(ctx, path)
	case BackendPostgres:
		return NewPostgresStore(ctx, opts.DatabaseURL)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, apperr.InvalidFormat("open store", fmt.Sprintf("unknown storage backend %q", opts.Backend), nil)
	}
}

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

func checkName(op, name string) error {
	if !validName.MatchString(name) {
		return apperr.InvalidFormat(op, fmt.Sprintf("invalid document name %q", name), nil)
	}
	return nil
}

// Load decodes the named document into a T. When the document does not exist
// def is returned and nothing is created. Content that fails its schema or
// does not decode is an apperr InvalidFormat error.
func Load[T any](ctx context.Context, s Store, name string, def T) (T, error) {
	data, err := s.Read(ctx, name)
	if errors.Is(err, apperr.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	if err := schemas.ValidateDocument(name, data); err != nil {
		return def, apperr.InvalidFormat("load "+name, "document does not match its schema", err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def, apperr.InvalidFormat("load "+name, "malformed document", err)
	}
	return v, nil
}

// Save encodes v and overwrites the named document. Values that fail the
// document schema are rejected before anything is written.
func Save(ctx context.Context, s Store, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := schemas.ValidateDocument(name, data); err != nil {
		return apperr.InvalidFormat("save "+name, "document does not match its schema", err)
	}

	return s.Write(ctx, name, data)
}
