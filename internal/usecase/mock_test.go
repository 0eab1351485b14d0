package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// mockChannelProvider provides a configurable mock for ChannelProvider.
type mockChannelProvider struct {
	resolveChannelFn     func(ctx context.Context, ref model.ChannelRef) (*model.ChannelRecord, error)
	listRecentVideoIDsFn func(ctx context.Context, uploadsID string, max int) ([]string, error)
	fetchVideosFn        func(ctx context.Context, ids []string) ([]model.RawVideo, error)

	resolveCount atomic.Int32
	fetchCount   atomic.Int32
}

func (m *mockChannelProvider) ResolveChannel(ctx context.Context, ref model.ChannelRef) (*model.ChannelRecord, error) {
	m.resolveCount.Add(1)
	if m.resolveChannelFn != nil {
		return m.resolveChannelFn(ctx, ref)
	}
	return &model.ChannelRecord{ChannelID: "UC" + ref.Value, Title: ref.Value, UploadsSourceID: "UU" + ref.Value}, nil
}

func (m *mockChannelProvider) ListRecentVideoIDs(ctx context.Context, uploadsID string, max int) ([]string, error) {
	if m.listRecentVideoIDsFn != nil {
		return m.listRecentVideoIDsFn(ctx, uploadsID, max)
	}
	return nil, nil
}

func (m *mockChannelProvider) FetchVideos(ctx context.Context, ids []string) ([]model.RawVideo, error) {
	m.fetchCount.Add(1)
	if m.fetchVideosFn != nil {
		return m.fetchVideosFn(ctx, ids)
	}
	return nil, nil
}

// mockChannelService is a mock implementation of ChannelService for testing.
type mockChannelService struct {
	fetchBundleFn    func(ctx context.Context, req BundleRequest) (*model.Bundle, error)
	fetchBundleCount atomic.Int32
}

func (m *mockChannelService) FetchBundle(ctx context.Context, req BundleRequest) (*model.Bundle, error) {
	m.fetchBundleCount.Add(1)
	if m.fetchBundleFn != nil {
		return m.fetchBundleFn(ctx, req)
	}
	return &model.Bundle{}, nil
}

// mockBundleCache is a mock implementation of BundleCache for testing.
type mockBundleCache struct {
	mu    sync.RWMutex
	data  map[string]*model.Bundle
	ttls  map[string]time.Duration
	getFn func(ctx context.Context, key string) (*model.Bundle, error)
	setFn func(ctx context.Context, key string, bundle *model.Bundle, ttl time.Duration) error
}

func newMockBundleCache() *mockBundleCache {
	return &mockBundleCache{
		data: make(map[string]*model.Bundle),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockBundleCache) Get(ctx context.Context, key string) (*model.Bundle, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *mockBundleCache) Set(ctx context.Context, key string, bundle *model.Bundle, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, bundle, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = bundle
	m.ttls[key] = ttl
	return nil
}
