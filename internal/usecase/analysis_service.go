package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hszk-dev/tubepulse/internal/analysis"
	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/domain/repository"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/metrics"
)

// Request bounds.
const (
	MinInputs = 1
	MaxInputs = 10

	DefaultDays = 60
	MinDays     = 7
	MaxDays     = 365

	DefaultMaxVideos = 80
	MinMaxVideos     = 10
	MaxMaxVideos     = 200
)

// AnalyzeInput contains the input parameters for a multi-channel analysis.
// Zero Days or MaxVideos select the defaults.
type AnalyzeInput struct {
	Inputs    []string
	Days      int
	MaxVideos int
}

// AnalysisService defines the interface for channel comparison.
type AnalysisService interface {
	// Analyze fetches every channel in order and merges them into one report.
	// The first channel that fails aborts the whole request.
	Analyze(ctx context.Context, input AnalyzeInput) (*model.Report, error)
}

type analysisService struct {
	channels ChannelService
	now      func() time.Time
}

// NewAnalysisService creates a new AnalysisService. A nil clock means time.Now.
func NewAnalysisService(channels ChannelService, now func() time.Time) AnalysisService {
	if now == nil {
		now = time.Now
	}
	return &analysisService{
		channels: channels,
		now:      now,
	}
}

func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (report *model.Report, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.AnalysisDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	refs, days, maxVideos, err := validate(input)
	if err != nil {
		return nil, err
	}

	report = &model.Report{
		Days:      days,
		MaxVideos: maxVideos,
		Channels:  make([]model.ChannelRecord, 0, len(refs)),
		Rows:      []model.VideoRecord{},
	}
	summaries := make([]model.ChannelSummary, 0, len(refs))
	now := s.now()

	// Channels run one after another to stay inside the upstream quota.
	for i, ref := range refs {
		bundle, err := s.channels.FetchBundle(ctx, BundleRequest{Ref: ref, Days: days, MaxVideos: maxVideos})
		if err != nil {
			return nil, classify(input.Inputs[i], err)
		}

		// A cached bundle may have been built hours ago; re-apply the window
		// against this request's clock.
		rows := analysis.FilterWindow(bundle.Videos, days, now)

		report.Channels = append(report.Channels, bundle.Channel)
		summaries = append(summaries, analysis.SummarizeChannel(bundle.Channel, rows))
		report.Rows = append(report.Rows, rows...)
	}

	ranking := analysis.RankGlobal(report.Rows)
	report.ChannelSummary = analysis.RankChannels(summaries)
	report.GlobalTopByVelocity = ranking.TopByVelocity
	report.GlobalTopByViewsPerDay = ranking.TopByViewsPerDay
	report.GlobalPatterns = ranking.Patterns

	slog.Info("analysis completed",
		"channels", len(refs),
		"rows", len(report.Rows),
		"days", days,
		"max_videos", maxVideos,
	)

	return report, nil
}

func validate(input AnalyzeInput) ([]model.ChannelRef, int, int, error) {
	if n := len(input.Inputs); n < MinInputs || n > MaxInputs {
		return nil, 0, 0, &ValidationError{
			Field:   "inputs",
			Message: fmt.Sprintf("must contain between %d and %d channels, got %d", MinInputs, MaxInputs, n),
		}
	}

	days := input.Days
	if days == 0 {
		days = DefaultDays
	}
	if days < MinDays || days > MaxDays {
		return nil, 0, 0, &ValidationError{
			Field:   "days",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinDays, MaxDays, days),
		}
	}

	maxVideos := input.MaxVideos
	if maxVideos == 0 {
		maxVideos = DefaultMaxVideos
	}
	if maxVideos < MinMaxVideos || maxVideos > MaxMaxVideos {
		return nil, 0, 0, &ValidationError{
			Field:   "maxVideos",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinMaxVideos, MaxMaxVideos, maxVideos),
		}
	}

	refs := make([]model.ChannelRef, len(input.Inputs))
	for i, raw := range input.Inputs {
		ref, err := model.ParseChannelInput(raw)
		if err != nil {
			return nil, 0, 0, &ValidationError{
				Field:   fmt.Sprintf("inputs[%d]", i),
				Message: err.Error(),
			}
		}
		refs[i] = ref
	}

	return refs, days, maxVideos, nil
}

func classify(input string, err error) error {
	input = strings.TrimSpace(input)
	if errors.Is(err, repository.ErrChannelNotFound) || errors.Is(err, repository.ErrNoUploads) {
		return &ResolutionError{Input: input, Err: err}
	}
	return &UpstreamError{Input: input, Err: err}
}
