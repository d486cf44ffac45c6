package prosperworks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	for _, config := range []*prosperworks.CacheConfig{
		nil,
		{Type: prosperworks.CacheTypeMemory},
		{},
	} {
		cache, err := prosperworks.NewCacheFromConfig(config)
		require.NoError(t, err)
		assert.IsType(t, &prosperworks.MemoryCache{}, cache)
	}
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	cache, err := prosperworks.NewCacheFromConfig(&prosperworks.CacheConfig{Type: prosperworks.CacheTypeNone})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "key", &prosperworks.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))

	_, err = cache.Get(ctx, "key")
	require.ErrorIs(t, err, prosperworks.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))
}

func TestCacheFactory_NATSRequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := prosperworks.NewCacheFromConfig(&prosperworks.CacheConfig{Type: prosperworks.CacheTypeNATS})
	require.ErrorIs(t, err, prosperworks.ErrNATSConfigRequired)

	_, err = prosperworks.NewCacheFromConfig(&prosperworks.CacheConfig{
		Type: prosperworks.CacheTypeNATS,
		NATS: &prosperworks.NATSKVConfig{},
	})
	require.ErrorIs(t, err, prosperworks.ErrNATSURLRequired)
}

func TestCacheFactory_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := prosperworks.NewCacheFromConfig(&prosperworks.CacheConfig{Type: "redis"})
	require.ErrorIs(t, err, prosperworks.ErrUnsupportedCacheType)
}

func TestCacheChain_PromotesToEarlierCaches(t *testing.T) {
	t.Parallel()

	l1 := prosperworks.NewMemoryCache()
	l2 := prosperworks.NewMemoryCache()
	chain := prosperworks.NewCacheChain(l1, l2)
	ctx := context.Background()

	require.NoError(t, l2.Set(ctx, "key", &prosperworks.CacheEntry{
		Data:      []byte(`"v"`),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	entry, err := chain.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"v"`), entry.Data)
	assert.True(t, l1.Has(ctx, "key"))

	require.NoError(t, chain.Clear(ctx))
	assert.False(t, chain.Has(ctx, "key"))

	_, err = chain.Get(ctx, "key")
	require.ErrorIs(t, err, prosperworks.ErrKeyNotFoundInAnyCache)
}

func TestReferenceCache_OverNoOpBackendAlwaysProduces(t *testing.T) {
	t.Parallel()

	cache := prosperworks.NewReferenceCache(prosperworks.NewNoOpCache(), time.Hour)
	calls := 0

	for range 2 {
		_, err := cache.GetOrSet(context.Background(), "key", func(context.Context) (any, error) {
			calls++

			return "v", nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, calls)
}
