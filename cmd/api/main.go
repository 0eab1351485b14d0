package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubepulse/internal/api/handler"
	"github.com/hszk-dev/tubepulse/internal/api/middleware"
	"github.com/hszk-dev/tubepulse/internal/config"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/cache"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/youtube"
	"github.com/hszk-dev/tubepulse/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	bundleCache, closeCache, err := newBundleCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	provider := youtube.NewClient(cfg.YouTube.APIKey,
		youtube.WithBaseURL(cfg.YouTube.BaseURL),
		youtube.WithHTTPClient(&http.Client{Timeout: cfg.YouTube.HTTPTimeout}),
		youtube.WithRateLimit(cfg.YouTube.RateLimit, cfg.YouTube.RateBurst),
	)

	channelSvc := usecase.NewChannelService(provider, usecase.ChannelServiceConfig{
		BatchConcurrency: cfg.YouTube.BatchConcurrency,
		Now:              time.Now,
	})
	cachedChannelSvc := usecase.NewCachedChannelService(channelSvc, bundleCache, usecase.CachedChannelServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})
	analysisSvc := usecase.NewAnalysisService(cachedChannelSvc, time.Now)

	r := setupRouter(logger, cfg.Server, handler.NewAnalyzeHandler(analysisSvc))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.String("cache_backend", cfg.Cache.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newBundleCache builds the configured cache backend and its cleanup func.
func newBundleCache(cfg *config.Config) (cache.BundleCache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("connected to redis", slog.String("addr", cfg.Redis.Addr()))

		return cache.NewRedisBundleCache(client), func() { _ = client.Close() }, nil
	default:
		memory, err := cache.NewMemoryBundleCache(cfg.Cache.Capacity)
		if err != nil {
			return nil, nil, err
		}
		return memory, func() {}, nil
	}
}

func setupRouter(logger *slog.Logger, cfg config.ServerConfig, analyze *handler.AnalyzeHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
		r.Post("/analyze", analyze.Analyze)
		r.Post("/analyze/export", analyze.Export)
	})

	return r
}
