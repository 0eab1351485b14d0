package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/metrics"
)

// DefaultCapacity is the default number of bundles kept in memory.
const DefaultCapacity = 500

type memoryEntry struct {
	bundle    *model.Bundle
	expiresAt time.Time
}

// MemoryBundleCache is a process-local BundleCache bounded by entry count
// (least recently used goes first) and by per-entry expiry.
type MemoryBundleCache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// MemoryOption configures a MemoryBundleCache.
type MemoryOption func(*MemoryBundleCache)

// WithClock replaces the wall clock used for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryBundleCache) {
		c.now = now
	}
}

// NewMemoryBundleCache creates an in-memory cache holding at most capacity bundles.
func NewMemoryBundleCache(capacity int, opts ...MemoryOption) (*MemoryBundleCache, error) {
	entries, err := lru.New[string, memoryEntry](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}

	c := &MemoryBundleCache{
		entries: entries,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the bundle stored under key, or nil on a miss.
// An expired entry is removed and reported as a miss.
func (c *MemoryBundleCache) Get(_ context.Context, key string) (*model.Bundle, error) {
	// lookup, expiry check and removal must happen as one step
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries.Get(key)
	if !ok {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeMemory).Inc()
		return nil, nil
	}

	if !c.now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusExpired, metrics.CacheTypeMemory).Inc()
		return nil, nil
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeMemory).Inc()
	return entry.bundle, nil
}

// Set stores bundle under key until now+ttl, evicting the least recently
// used entry when the cache is full.
func (c *MemoryBundleCache) Set(_ context.Context, key string, bundle *model.Bundle, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(key, memoryEntry{
		bundle:    bundle,
		expiresAt: c.now().Add(ttl),
	})
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeMemory).Inc()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryBundleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

var _ BundleCache = (*MemoryBundleCache)(nil)
