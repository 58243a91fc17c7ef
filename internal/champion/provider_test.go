package champion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProvider_FetchesAndCaches(t *testing.T) {
	cache := newTestCache(t)
	p := &Provider{DD: newFakeCDN(t), Cache: cache, Log: zap.NewNop()}
	ctx := context.Background()

	reg, err := p.Registry(ctx)
	require.NoError(t, err)

	id, ok := reg.Lookup("Wukong")
	assert.True(t, ok)
	assert.Equal(t, ID(62), id)

	// The fetched table landed in the cache.
	table, err := cache.Table(ctx, "15.16.1")
	require.NoError(t, err)
	assert.Equal(t, ID(103), table["Ahri"])
}

func TestProvider_PrefersCachedTable(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	// Seed a table that differs from what the CDN would return; the cached
	// one must win.
	require.NoError(t, cache.SaveTable(ctx, "15.16.1", map[string]ID{"Cached": 999}))

	p := &Provider{DD: newFakeCDN(t), Cache: cache, Log: zap.NewNop()}
	reg, err := p.Registry(ctx)
	require.NoError(t, err)

	_, ok := reg.Lookup("Ahri")
	assert.False(t, ok)

	id, ok := reg.Lookup("Cached")
	assert.True(t, ok)
	assert.Equal(t, ID(999), id)
}

func TestProvider_OfflineFallsBackToCache(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveTable(ctx, "15.16.1", map[string]ID{"Ahri": 103}))

	// Unreachable CDN: version lookup fails, the cached latest version and
	// table still produce a registry.
	dd := NewDataDragon()
	dd.BaseURL = "http://127.0.0.1:1"

	p := &Provider{DD: dd, Cache: cache, Log: zap.NewNop()}
	reg, err := p.Registry(ctx)
	require.NoError(t, err)

	id, ok := reg.Lookup("ahri")
	assert.True(t, ok)
	assert.Equal(t, ID(103), id)
}

func TestProvider_OfflineWithoutCacheFails(t *testing.T) {
	t.Parallel()

	dd := NewDataDragon()
	dd.BaseURL = "http://127.0.0.1:1"

	p := &Provider{DD: dd, Log: zap.NewNop()}
	_, err := p.Registry(context.Background())
	assert.Error(t, err)
}
