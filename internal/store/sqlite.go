package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/jobready/internal/apperr"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps documents in a single-file SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// documents table exists.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS documents (
		name       TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName("read", name); err != nil {
		return nil, err
	}
	var content string
	err := s.db.QueryRowContext(ctx, "SELECT content FROM documents WHERE name = ?", name).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("read", fmt.Sprintf("document %s does not exist", name), err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", name, err)
	}
	return []byte(content), nil
}

// Write implements Store.
func (s *SQLiteStore) Write(ctx context.Context, name string, data []byte) error {
	if err := checkName("write", name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, content, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = CURRENT_TIMESTAMP`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing document %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
