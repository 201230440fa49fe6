package driven

import "context"

// CacheStore is the persistent local key/value store backing the TTL cache.
// Values are JSON-encoded {timestamp, data} envelopes; the store itself is
// oblivious to expiry.
type CacheStore interface {
	// Get returns the stored value for key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous entry.
	Set(ctx context.Context, key, value string) error

	// Delete removes an entry. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
