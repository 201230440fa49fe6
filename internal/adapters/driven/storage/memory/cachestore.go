package memory

import (
	"context"
	"sync"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is an in-memory implementation of driven.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string]string),
	}
}

// Get returns the stored value for key, or domain.ErrNotFound.
func (s *CacheStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

// Set stores value under key, overwriting any previous entry.
func (s *CacheStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Delete removes an entry. Missing keys are not an error.
func (s *CacheStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
