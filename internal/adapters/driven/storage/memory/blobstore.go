package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/w3labs/sportsync/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is an in-memory implementation of driven.BlobStore.
type BlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs: make(map[string][]byte),
	}
}

// Upload stores the blob and returns a synthetic download URL.
func (s *BlobStore) Upload(_ context.Context, ownerID, path string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read blob: %w", err)
	}
	url := fmt.Sprintf("mem://owners/%s/%s", ownerID, path)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[url] = data
	return url, nil
}

// DeleteByURL removes a blob. Missing objects are ignored.
func (s *BlobStore) DeleteByURL(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, url)
	return nil
}

// Blob returns the stored bytes for a download URL. Test hook.
func (s *BlobStore) Blob(url string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[url]
	return data, ok
}
