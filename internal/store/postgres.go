package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/jobready/internal/apperr"
)

// PostgresStore keeps documents as JSONB rows in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the documents table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, apperr.InvalidFormat("open postgres store", "database URL is empty", nil)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS documents (
		name       TEXT PRIMARY KEY,
		content    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Read implements Store.
func (s *PostgresStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName("read", name); err != nil {
		return nil, err
	}
	var content []byte
	err := s.pool.QueryRow(ctx, `SELECT content FROM documents WHERE name = $1`, name).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("read", fmt.Sprintf("document %s does not exist", name), err)
		}
		return nil, fmt.Errorf("failed to get document %s: %w", name, err)
	}
	return content, nil
}

// Write implements Store.
func (s *PostgresStore) Write(ctx context.Context, name string, data []byte) error {
	if err := checkName("write", name); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (name, content) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET content = $2, updated_at = NOW()`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", name, err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
