package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/logger"
)

// Loader fetches fresh data on a cache miss. It is an asynchronous remote
// fetch; the returned bytes must be valid JSON.
type Loader func(ctx context.Context) ([]byte, error)

// Cache fronts remote fetches with a persistent TTL cache.
//
// Entries are stored as JSON {timestamp, data} envelopes in a string
// key/value store. Concurrent loads for the same key coalesce into a
// single in-flight loader invocation; every caller receives that result.
type Cache struct {
	store driven.CacheStore
	group singleflight.Group
	now   func() time.Time
}

// NewCache creates a cache on top of a persistent key/value store.
func NewCache(store driven.CacheStore) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
	}
}

// cacheEnvelope is the persisted form of one cache entry.
type cacheEnvelope struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// FetchOrLoad returns the cached payload for key while it is younger than
// ttl, otherwise invokes loader, stores the result and returns it.
//
// A loader failure propagates to every coalesced caller wrapped in
// domain.ErrRemoteFetch; nothing is written, so the next call retries
// immediately. A non-positive ttl always reloads.
func (c *Cache) FetchOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetchOrLoad(ctx, key, ttl, loader)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) fetchOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var env cacheEnvelope
		if jerr := json.Unmarshal([]byte(raw), &env); jerr != nil {
			// Malformed envelope counts as a miss.
			logger.Debug("cache envelope malformed for key %s: %v", key, jerr)
		} else if ttl > 0 && c.now().Sub(time.UnixMilli(env.Timestamp)) < ttl {
			logger.Debug("cache HIT for key: %s", key)
			return []byte(env.Data), nil
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		logger.Warn("cache read failed for key %s: %v", key, err)
	}

	logger.Debug("cache MISS for key: %s, fetching from network", key)
	data, err := loader(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRemoteFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteFetch, err)
	}

	blob, err := json.Marshal(cacheEnvelope{
		Timestamp: c.now().UnixMilli(),
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode envelope: %w", domain.ErrSerialization, err)
	}
	if err := c.store.Set(ctx, key, string(blob)); err != nil {
		return nil, fmt.Errorf("store cache entry: %w", err)
	}
	return data, nil
}

// Invalidate drops the entry for key so the next fetch reloads.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}
