package champion

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client)
}

func TestCache_SaveAndLoadTable(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	table := map[string]ID{"Ahri": 103, "Zed": 238}
	require.NoError(t, cache.SaveTable(ctx, "15.16.1", table))

	loaded, err := cache.Table(ctx, "15.16.1")
	require.NoError(t, err)
	assert.Equal(t, table, loaded)

	version, err := cache.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "15.16.1", version)
}

func TestCache_MissReturnsNil(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	table, err := cache.Table(ctx, "15.16.1")
	assert.NoError(t, err)
	assert.Nil(t, table)

	version, err := cache.LatestVersion(ctx)
	assert.NoError(t, err)
	assert.Empty(t, version)
}

func TestCache_SaveOverwritesLatest(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveTable(ctx, "15.15.1", map[string]ID{"Ahri": 103}))
	require.NoError(t, cache.SaveTable(ctx, "15.16.1", map[string]ID{"Ahri": 103}))

	version, err := cache.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "15.16.1", version)
}
