package prosperworks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
)

// ErrNATSURLRequired is returned when the NATS configuration has no server URL.
var ErrNATSURLRequired = errors.New("NATS server URL is required")

// NATSKVConfig configures the JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. nats://127.0.0.1:4222.
	URL string
	// Bucket name; created on first use when missing.
	Bucket string
	// TTL applied to the bucket when it is created. Entries also carry their
	// own expiry, so a longer bucket TTL only delays purging.
	TTL time.Duration
	// Options are passed to nats.Connect.
	Options []nats.Option
}

// NATSKVCache shares reference data between processes through a JetStream
// key-value bucket.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
	now  func() time.Time
}

// NewNATSKVCache connects to NATS and opens (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	if config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	opts := append([]nats.Option{nats.Name("prosperworks-client")}, config.Options...)

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "ProsperWorks reference data",
			TTL:         config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening key-value bucket %q: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv, now: time.Now}, nil
}

// Get returns a live entry from the bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	item, err := c.kv.Get(natsKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s from NATS: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(item.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cached %s: %w", key, err)
	}

	if !entry.Valid(c.now()) {
		_ = c.kv.Delete(natsKey(key))

		return nil, ErrCacheEntryExpired
	}

	return &entry, nil
}

// Set stores an entry in the bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding %s for NATS: %w", key, err)
	}

	_, err = c.kv.Put(natsKey(key), data)
	if err != nil {
		return fmt.Errorf("writing %s to NATS: %w", key, err)
	}

	return nil
}

// Delete removes an entry from the bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(natsKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting %s from NATS: %w", key, err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing NATS keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging %s from NATS: %w", key, err)
		}
	}

	return nil
}

// Has reports whether a live entry exists.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close drains the NATS connection.
func (c *NATSKVCache) Close() error {
	return c.conn.Drain()
}

// natsKey maps a cache key onto the characters NATS allows in KV keys.
func natsKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '=' || r == '.' || r == '/':
			return r
		default:
			return '_'
		}
	}, key)
}
