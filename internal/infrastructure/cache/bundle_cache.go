package cache

import (
	"context"
	"time"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// BundleCache defines the interface for caching per-channel analysis bundles.
// Eviction is internal to each implementation.
type BundleCache interface {
	// Get retrieves a bundle by key.
	// Returns nil, nil if the key is absent or expired (cache miss).
	Get(ctx context.Context, key string) (*model.Bundle, error)

	// Set stores a bundle under key for at most ttl.
	Set(ctx context.Context, key string, bundle *model.Bundle, ttl time.Duration) error
}
