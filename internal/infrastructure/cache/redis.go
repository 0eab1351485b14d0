package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/metrics"
)

const (
	// bundleCacheKeyPrefix is the prefix for bundle cache keys in Redis.
	bundleCacheKeyPrefix = "bundle:"

	// bundleSchemaVersion changes whenever the cached bundle layout changes.
	// Entries written under another version are treated as misses.
	bundleSchemaVersion = 1
)

// bundleJSON is the envelope stored in Redis.
type bundleJSON struct {
	Version  int          `json:"v"`
	StoredAt string       `json:"stored_at"`
	Bundle   model.Bundle `json:"bundle"`
}

// RedisBundleCache implements BundleCache using Redis as the backing store.
// Expiry is the key TTL; eviction under memory pressure is left to the
// server's maxmemory policy (allkeys-lru).
type RedisBundleCache struct {
	client *redis.Client
}

// NewRedisBundleCache creates a new Redis-backed bundle cache.
func NewRedisBundleCache(client *redis.Client) *RedisBundleCache {
	return &RedisBundleCache{
		client: client,
	}
}

// Get retrieves a bundle from Redis.
// Returns nil, nil on cache miss.
func (c *RedisBundleCache) Get(ctx context.Context, key string) (*model.Bundle, error) {
	data, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
			return nil, nil // Cache miss
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	bundle, err := c.deserialize(data)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("deserialize bundle: %w", err)
	}
	if bundle == nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
		return nil, nil
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
	return bundle, nil
}

// Set stores a bundle in Redis with the specified TTL.
func (c *RedisBundleCache) Set(ctx context.Context, key string, bundle *model.Bundle, ttl time.Duration) error {
	data, err := c.serialize(bundle)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("serialize bundle: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(key), data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// buildKey constructs the Redis key for a bundle cache key.
func (c *RedisBundleCache) buildKey(key string) string {
	return bundleCacheKeyPrefix + key
}

func (c *RedisBundleCache) serialize(bundle *model.Bundle) ([]byte, error) {
	return json.Marshal(bundleJSON{
		Version:  bundleSchemaVersion,
		StoredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Bundle:   *bundle,
	})
}

// deserialize returns nil, nil for entries written under another schema version.
func (c *RedisBundleCache) deserialize(data []byte) (*model.Bundle, error) {
	var v bundleJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v.Version != bundleSchemaVersion {
		return nil, nil
	}
	return &v.Bundle, nil
}

var _ BundleCache = (*RedisBundleCache)(nil)
