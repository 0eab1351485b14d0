package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/tubepulse/internal/analysis"
	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/domain/repository"
)

// BundleRequest identifies one cacheable unit of work.
type BundleRequest struct {
	Ref       model.ChannelRef
	Days      int
	MaxVideos int
}

// CacheKey returns the deterministic key for the request.
func (r BundleRequest) CacheKey() string {
	return r.Ref.CacheKey(r.Days, r.MaxVideos)
}

// ChannelService builds per-channel bundles.
type ChannelService interface {
	// FetchBundle resolves the channel, pulls its most recent videos and
	// derives the per-channel records, patterns and top lists.
	FetchBundle(ctx context.Context, req BundleRequest) (*model.Bundle, error)
}

// ChannelServiceConfig holds configuration for ChannelService.
type ChannelServiceConfig struct {
	// BatchConcurrency bounds the number of metadata batches in flight.
	BatchConcurrency int
	// Now is the clock used for age and window computations.
	Now func() time.Time
}

// DefaultChannelServiceConfig returns the default configuration.
func DefaultChannelServiceConfig() ChannelServiceConfig {
	return ChannelServiceConfig{
		BatchConcurrency: 2,
		Now:              time.Now,
	}
}

type channelService struct {
	provider repository.ChannelProvider

	batchConcurrency int
	now              func() time.Time
}

// NewChannelService creates a new ChannelService instance.
func NewChannelService(provider repository.ChannelProvider, cfg ChannelServiceConfig) ChannelService {
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &channelService{
		provider:         provider,
		batchConcurrency: cfg.BatchConcurrency,
		now:              cfg.Now,
	}
}

func (s *channelService) FetchBundle(ctx context.Context, req BundleRequest) (*model.Bundle, error) {
	channel, err := s.provider.ResolveChannel(ctx, req.Ref)
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	ids, err := s.provider.ListRecentVideoIDs(ctx, channel.UploadsSourceID, req.MaxVideos)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	raw, err := s.fetchVideos(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	records := make([]model.VideoRecord, 0, len(raw))
	for _, v := range raw {
		rec := analysis.BuildRecord(v, now)
		if rec.ChannelID == "" {
			rec.ChannelID = channel.ChannelID
		}
		if rec.ChannelTitle == "" {
			rec.ChannelTitle = channel.Title
		}
		records = append(records, rec)
	}
	inWindow := analysis.FilterWindow(records, req.Days, now)

	slog.Info("channel fetched",
		"channel_id", channel.ChannelID,
		"videos_fetched", len(records),
		"videos_in_window", len(inWindow),
	)

	return &model.Bundle{
		Channel:          *channel,
		Videos:           inWindow,
		Patterns:         analysis.TitlePatterns(inWindow),
		TopByVelocity:    analysis.TopByVelocity(inWindow, analysis.TopLimit),
		TopByViewsPerDay: analysis.TopByViewsPerDay(inWindow, analysis.TopLimit),
		FetchedAt:        now,
	}, nil
}

// fetchVideos splits ids into provider-sized batches and fetches them with
// bounded concurrency. Results keep the order of ids.
func (s *channelService) fetchVideos(ctx context.Context, ids []string) ([]model.RawVideo, error) {
	batches := chunk(ids, repository.MaxVideoBatch)
	results := make([][]model.RawVideo, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, batch := range batches {
		g.Go(func() error {
			videos, err := s.provider.FetchVideos(gctx, batch)
			if err != nil {
				return fmt.Errorf("fetch videos batch %d: %w", i, err)
			}
			results[i] = videos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.RawVideo, 0, len(ids))
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
