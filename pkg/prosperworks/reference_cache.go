package prosperworks

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
)

// Producer computes a value to cache.
type Producer func(ctx context.Context) (any, error)

// CacheStats counts reference cache traffic.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// GetHitRate returns the cache hit rate.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// ReferenceCache memoizes decoded JSON values for a bounded lifetime on top of
// a byte-level backend. Concurrent GetOrSet calls for the same key share one
// producer call.
type ReferenceCache struct {
	backend   Cache
	maxLife   time.Duration
	now       func() time.Time
	namespace string
	group     singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// ReferenceCacheOption configures a ReferenceCache.
type ReferenceCacheOption func(*ReferenceCache)

// WithClock replaces the clock used to stamp entries.
func WithClock(now func() time.Time) ReferenceCacheOption {
	return func(c *ReferenceCache) {
		c.now = now
	}
}

// WithNamespace prefixes every backend key with namespace, so caches for
// different identities can share one backend without seeing each other.
func WithNamespace(namespace string) ReferenceCacheOption {
	return func(c *ReferenceCache) {
		c.namespace = namespace
	}
}

// NewReferenceCache creates a cache whose entries live for maxLife. A nil
// backend means an in-memory one, a non-positive maxLife the default hour.
func NewReferenceCache(backend Cache, maxLife time.Duration, opts ...ReferenceCacheOption) *ReferenceCache {
	if backend == nil {
		backend = NewMemoryCache()
	}

	if maxLife <= 0 {
		maxLife = constants.DefaultCacheLife
	}

	c := &ReferenceCache{
		backend: backend,
		maxLife: maxLife,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Namespace returns the key prefix, "" when unscoped.
func (c *ReferenceCache) Namespace() string {
	return c.namespace
}

func (c *ReferenceCache) backendKey(key string) string {
	if c.namespace == "" {
		return key
	}

	return c.namespace + "." + key
}

// MaxLife returns the entry lifetime.
func (c *ReferenceCache) MaxLife() time.Duration {
	return c.maxLife
}

// Get returns the cached value for key and whether a live entry existed.
func (c *ReferenceCache) Get(ctx context.Context, key string) (any, bool) {
	entry, err := c.backend.Get(ctx, c.backendKey(key))
	if err != nil {
		c.misses.Add(1)

		return nil, false
	}

	value, err := decodeCached(entry.Data)
	if err != nil {
		c.misses.Add(1)
		_ = c.backend.Delete(ctx, c.backendKey(key))

		return nil, false
	}

	c.hits.Add(1)

	return value, true
}

// GetOr returns the cached value for key, or def when there is none.
func (c *ReferenceCache) GetOr(ctx context.Context, key string, def any) any {
	value, ok := c.Get(ctx, key)
	if !ok {
		return def
	}

	return value
}

// Set stores value under key for the cache lifetime.
func (c *ReferenceCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cached %s: %w", key, err)
	}

	now := c.now()

	if cleaner, ok := c.backend.(interface{ Cleanup() }); ok {
		cleaner.Cleanup()
	}

	err = c.backend.Set(ctx, c.backendKey(key), &CacheEntry{
		Data:      data,
		StoredAt:  now,
		ExpiresAt: now.Add(c.maxLife),
	})
	if err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}

	c.sets.Add(1)

	return nil
}

// GetOrSet returns the live value for key, calling producer only when the key
// is absent or expired. Producer errors are returned and nothing is cached.
func (c *ReferenceCache) GetOrSet(ctx context.Context, key string, producer Producer) (any, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		if cached, ok := c.Get(ctx, key); ok {
			return cached, nil
		}

		produced, err := producer(ctx)
		if err != nil {
			return nil, err
		}

		err = c.Set(ctx, key, produced)
		if err != nil {
			return nil, err
		}

		return produced, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Invalidate drops key from the cache.
func (c *ReferenceCache) Invalidate(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, c.backendKey(key))
}

// Clear drops every entry of the backend, other namespaces included.
func (c *ReferenceCache) Clear(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

// Stats returns a snapshot of the counters.
func (c *ReferenceCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
	}
}

func decodeCached(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any

	err := dec.Decode(&value)
	if err != nil {
		return nil, err
	}

	return value, nil
}
