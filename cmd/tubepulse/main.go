// Package main provides the tubepulse CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hszk-dev/tubepulse/internal/config"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/cache"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/youtube"
	"github.com/hszk-dev/tubepulse/internal/usecase"
)

var version = "0.1.0"

// serviceFactory builds the analysis stack; tests swap it for a stub.
type serviceFactory func(cfg *config.Config) (usecase.AnalysisService, error)

func main() {
	if err := newRootCmd(newAnalysisService).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the tubepulse CLI.
func newRootCmd(factory serviceFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tubepulse",
		Short:        "Compare recent performance of YouTube channels",
		Long:         "Tubepulse pulls recent uploads for a set of channels and ranks them by growth rate, title patterns and hook style.",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("tubepulse version {{.Version}}\n")
	rootCmd.AddCommand(newAnalyzeCmd(factory))

	return rootCmd
}

// newAnalyzeCmd creates the analyze subcommand.
func newAnalyzeCmd(factory serviceFactory) *cobra.Command {
	var (
		days      int
		maxVideos int
		format    string
		patterns  int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze <channel> [channel...]",
		Short: "Analyze one or more channels",
		Long: `Analyze channels given as @handles, channel IDs (UC...) or channel URLs.

Examples:
  tubepulse analyze @veritasium @kurzgesagt --days 30
  tubepulse analyze https://www.youtube.com/@mkbhd --format json`,
		Args: cobra.RangeArgs(usecase.MinInputs, usecase.MaxInputs),
		RunE: func(cmd *cobra.Command, args []string) error {
			render, ok := renderers[format]
			if !ok {
				return fmt.Errorf("invalid format %q: must be table, json or csv", format)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.Log.SlogLevel(),
			})))

			svc, err := factory(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := svc.Analyze(ctx, usecase.AnalyzeInput{
				Inputs:    args,
				Days:      days,
				MaxVideos: maxVideos,
			})
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), report, renderOptions{patterns: patterns})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", usecase.DefaultDays, "Only include videos published within this many days")
	cmd.Flags().IntVarP(&maxVideos, "max-videos", "n", usecase.DefaultMaxVideos, "Most recent uploads to inspect per channel")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, csv)")
	cmd.Flags().IntVar(&patterns, "patterns", 40, "Global title patterns to show in table output")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for the analysis")

	return cmd
}

// newAnalysisService wires the YouTube client behind an in-process cache.
func newAnalysisService(cfg *config.Config) (usecase.AnalysisService, error) {
	if cfg.YouTube.APIKey == "" {
		return nil, fmt.Errorf("%w: export it or add it to .env", config.ErrMissingAPIKey)
	}

	bundles, err := cache.NewMemoryBundleCache(cfg.Cache.Capacity)
	if err != nil {
		return nil, err
	}

	provider := youtube.NewClient(cfg.YouTube.APIKey,
		youtube.WithBaseURL(cfg.YouTube.BaseURL),
		youtube.WithHTTPClient(&http.Client{Timeout: cfg.YouTube.HTTPTimeout}),
		youtube.WithRateLimit(cfg.YouTube.RateLimit, cfg.YouTube.RateBurst),
	)

	channels := usecase.NewChannelService(provider, usecase.ChannelServiceConfig{
		BatchConcurrency: cfg.YouTube.BatchConcurrency,
		Now:              time.Now,
	})
	cached := usecase.NewCachedChannelService(channels, bundles, usecase.CachedChannelServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})
	return usecase.NewAnalysisService(cached, time.Now), nil
}
