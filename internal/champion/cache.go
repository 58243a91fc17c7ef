package champion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key layout.
	tableKeyPrefix   = "autodraft:ddragon:"
	latestVersionKey = "autodraft:ddragon:latest"

	// Tables are immutable per version; superseded versions expire.
	tableExpiration = 7 * 24 * time.Hour
)

// Cache stores fetched champion tables in Redis so restarts between patches
// skip the CDN round trip.
type Cache struct {
	client *redis.Client
}

// NewCache creates a champion-table cache on top of a Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Table loads the cached table for a version. A cache miss returns (nil, nil).
func (c *Cache) Table(ctx context.Context, version string) (map[string]ID, error) {
	data, err := c.client.Get(ctx, tableKeyPrefix+version).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var table map[string]ID
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode cached champion table: %w", err)
	}
	return table, nil
}

// SaveTable stores a table under its version and records the version as the
// latest known one.
func (c *Cache) SaveTable(ctx context.Context, version string, table map[string]ID) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode champion table: %w", err)
	}

	if err := c.client.Set(ctx, tableKeyPrefix+version, data, tableExpiration).Err(); err != nil {
		return err
	}
	return c.client.Set(ctx, latestVersionKey, version, 0).Err()
}

// LatestVersion returns the most recently cached version, or "" when none
// has been recorded.
func (c *Cache) LatestVersion(ctx context.Context) (string, error) {
	version, err := c.client.Get(ctx, latestVersionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return version, nil
}
