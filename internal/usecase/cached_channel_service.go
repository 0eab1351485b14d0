package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/cache"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/metrics"
)

// CachedChannelServiceConfig holds configuration for CachedChannelService.
type CachedChannelServiceConfig struct {
	// CacheTTL is how long a bundle is served without refetching.
	CacheTTL time.Duration
}

// DefaultCachedChannelServiceConfig returns the default configuration.
func DefaultCachedChannelServiceConfig() CachedChannelServiceConfig {
	return CachedChannelServiceConfig{
		CacheTTL: 6 * time.Hour,
	}
}

// cachedChannelService wraps ChannelService with a bundle cache.
type cachedChannelService struct {
	delegate ChannelService
	cache    cache.BundleCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedChannelService creates a ChannelService that memoizes bundles by
// (channel, window, limit).
func NewCachedChannelService(
	delegate ChannelService,
	bundleCache cache.BundleCache,
	cfg CachedChannelServiceConfig,
) ChannelService {
	return &cachedChannelService{
		delegate: delegate,
		cache:    bundleCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// FetchBundle returns a cached bundle when one is live, otherwise fetches and
// stores a fresh one. Concurrent misses on the same key share one fetch.
func (s *cachedChannelService) FetchBundle(ctx context.Context, req BundleRequest) (*model.Bundle, error) {
	key := req.CacheKey()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.fetchWithCache(ctx, key, req)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.(*model.Bundle), nil
}

func (s *cachedChannelService) fetchWithCache(ctx context.Context, key string, req BundleRequest) (*model.Bundle, error) {
	bundle, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("cache get failed, falling back to upstream",
			"cache_key", key,
			"error", err,
		)
	}

	if bundle != nil {
		slog.Debug("bundle cache hit", "cache_key", key)
		return bundle, nil
	}
	slog.Debug("bundle cache miss", "cache_key", key)

	bundle, err = s.delegate.FetchBundle(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, bundle, s.cacheTTL); err != nil {
		slog.Warn("failed to cache bundle",
			"cache_key", key,
			"error", err,
		)
	}

	return bundle, nil
}
