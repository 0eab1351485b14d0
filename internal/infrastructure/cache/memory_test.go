package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewMemoryBundleCache_InvalidCapacity(t *testing.T) {
	if _, err := NewMemoryBundleCache(0); err == nil {
		t.Error("expected an error for zero capacity")
	}
}

func TestMemoryBundleCache_HitAndMiss(t *testing.T) {
	cache, err := NewMemoryBundleCache(DefaultCapacity)
	if err != nil {
		t.Fatalf("NewMemoryBundleCache failed: %v", err)
	}
	ctx := context.Background()
	bundle := testBundle()

	if got, err := cache.Get(ctx, "k"); err != nil || got != nil {
		t.Fatalf("Get on empty cache = %v, %v; want nil, nil", got, err)
	}

	if err := cache.Set(ctx, "k", bundle, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != bundle {
		t.Error("expected the stored bundle to be returned verbatim")
	}
}

func TestMemoryBundleCache_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	cache, err := NewMemoryBundleCache(DefaultCapacity, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewMemoryBundleCache failed: %v", err)
	}
	ctx := context.Background()

	if err := cache.Set(ctx, "k", testBundle(), 6*time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	clock.Advance(6*time.Hour - time.Nanosecond)
	if got, _ := cache.Get(ctx, "k"); got == nil {
		t.Fatal("bundle expired before its TTL")
	}

	clock.Advance(time.Nanosecond)
	if got, _ := cache.Get(ctx, "k"); got != nil {
		t.Error("bundle still served at its expiry instant")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", cache.Len())
	}
}

func TestMemoryBundleCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache, err := NewMemoryBundleCache(3)
	if err != nil {
		t.Fatalf("NewMemoryBundleCache failed: %v", err)
	}
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := cache.Set(ctx, k, testBundle(), time.Hour); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	// Touch "a" so "b" becomes the least recently used entry.
	if got, _ := cache.Get(ctx, "a"); got == nil {
		t.Fatal("expected hit for a")
	}
	if err := cache.Set(ctx, "d", testBundle(), time.Hour); err != nil {
		t.Fatalf("Set(d) failed: %v", err)
	}

	if got, _ := cache.Get(ctx, "b"); got != nil {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if got, _ := cache.Get(ctx, k); got == nil {
			t.Errorf("expected %s to survive eviction", k)
		}
	}
	if cache.Len() != 3 {
		t.Errorf("Len = %d, want 3", cache.Len())
	}
}

func TestMemoryBundleCache_ConcurrentAccess(t *testing.T) {
	cache, err := NewMemoryBundleCache(50)
	if err != nil {
		t.Fatalf("NewMemoryBundleCache failed: %v", err)
	}
	ctx := context.Background()
	bundle := testBundle()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%80)
				_ = cache.Set(ctx, key, bundle, time.Minute)
				_, _ = cache.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() > 50 {
		t.Errorf("Len = %d exceeds capacity", cache.Len())
	}
}
