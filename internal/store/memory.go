package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/jobready/internal/apperr"
)

// MemoryStore keeps documents in memory. Nothing survives the process.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, apperr.NotFound("read", fmt.Sprintf("document %s does not exist", name), nil)
	}
	return append([]byte(nil), data...), nil
}

// Write implements Store.
func (s *MemoryStore) Write(_ context.Context, name string, data []byte) error {
	if err := checkName("write", name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = append([]byte(nil), data...)
	return nil
}

// Close implements Backend.
func (s *MemoryStore) Close() error { return nil }
