package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return mr, client, cleanup
}

func testBundle() *model.Bundle {
	published := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	video := model.VideoRecord{
		ChannelID:    "UC123",
		ChannelTitle: "Demo",
		VideoID:      "vid1",
		Title:        "Cách nấu phở",
		PublishedAt:  published,
		DurationSec:  630,
		Views:        4000,
		Likes:        90,
		Comments:     3,
		AgeDays:      4,
		ViewsPerDay:  1000,
		Velocity:     2000,
		HookTag:      "How-to",
		URL:          "https://www.youtube.com/watch?v=vid1",
	}
	return &model.Bundle{
		Channel: model.ChannelRecord{
			ChannelID:       "UC123",
			Title:           "Demo",
			UploadsSourceID: "UU123",
			Subscribers:     10,
			TotalViews:      20,
			VideoCount:      1,
		},
		Videos:           []model.VideoRecord{video},
		Patterns:         []model.PatternEntry{{Phrase: "nấu phở", Count: 1}},
		TopByVelocity:    []model.VideoRecord{video},
		TopByViewsPerDay: []model.VideoRecord{video},
		FetchedAt:        published.Add(time.Hour),
	}
}

func TestRedisBundleCache_Get_CacheHit(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)
	ctx := context.Background()
	bundle := testBundle()

	if err := cache.Set(ctx, "handle:demo|d30|n20", bundle, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "handle:demo|d30|n20")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected bundle, got nil")
	}

	if got.Channel != bundle.Channel {
		t.Errorf("Channel = %+v, want %+v", got.Channel, bundle.Channel)
	}
	if len(got.Videos) != 1 {
		t.Fatalf("Videos len = %d, want 1", len(got.Videos))
	}
	if !got.Videos[0].PublishedAt.Equal(bundle.Videos[0].PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", got.Videos[0].PublishedAt, bundle.Videos[0].PublishedAt)
	}
	if got.Videos[0].Title != "Cách nấu phở" || got.Videos[0].Velocity != 2000 {
		t.Errorf("Video = %+v", got.Videos[0])
	}
	if len(got.Patterns) != 1 || got.Patterns[0].Phrase != "nấu phở" {
		t.Errorf("Patterns = %v", got.Patterns)
	}
}

func TestRedisBundleCache_Get_CacheMiss(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)

	got, err := cache.Get(context.Background(), "handle:nobody|d30|n20")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for cache miss, got %v", got)
	}
}

func TestRedisBundleCache_ExpiresAfterTTL(t *testing.T) {
	mr, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", testBundle(), 6*time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(6*time.Hour - time.Minute)
	if got, _ := cache.Get(ctx, "k"); got == nil {
		t.Fatal("bundle expired before its TTL")
	}

	mr.FastForward(2 * time.Minute)
	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("bundle still present after TTL")
	}
}

func TestRedisBundleCache_SchemaMismatchIsMiss(t *testing.T) {
	mr, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)
	if err := mr.Set(cache.buildKey("k"), `{"v":999,"bundle":{}}`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	got, err := cache.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss for foreign schema, got %+v", got)
	}
}

func TestRedisBundleCache_CorruptEntry(t *testing.T) {
	mr, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)
	if err := mr.Set(cache.buildKey("k"), "not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := cache.Get(context.Background(), "k"); err == nil {
		t.Error("expected an error for a corrupt entry")
	}
}

func TestRedisBundleCache_ConnectionError(t *testing.T) {
	mr, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)
	mr.Close()

	if _, err := cache.Get(context.Background(), "k"); err == nil {
		t.Error("expected an error when redis is unreachable")
	}
	if err := cache.Set(context.Background(), "k", testBundle(), time.Minute); err == nil {
		t.Error("expected an error when redis is unreachable")
	}
}

func TestRedisBundleCache_buildKey(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisBundleCache(client)

	key := cache.buildKey("handle:demo|d30|n20")
	expected := "bundle:handle:demo|d30|n20"

	if key != expected {
		t.Errorf("buildKey() = %v, want %v", key, expected)
	}
}
