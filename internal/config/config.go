package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	YouTube YouTubeConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"90s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
	// RequestTimeout bounds a whole analysis request, upstream calls included.
	RequestTimeout time.Duration `envconfig:"API_REQUEST_TIMEOUT" default:"75s"`
	CORSOrigins    []string      `envconfig:"API_CORS_ORIGINS" default:"*"`
}

type YouTubeConfig struct {
	APIKey           string        `envconfig:"YOUTUBE_API_KEY"`
	BaseURL          string        `envconfig:"YOUTUBE_BASE_URL" default:"https://www.googleapis.com"`
	HTTPTimeout      time.Duration `envconfig:"YOUTUBE_HTTP_TIMEOUT" default:"15s"`
	RateLimit        float64       `envconfig:"YOUTUBE_RATE_LIMIT" default:"5"`
	RateBurst        int           `envconfig:"YOUTUBE_RATE_BURST" default:"5"`
	BatchConcurrency int           `envconfig:"YOUTUBE_BATCH_CONCURRENCY" default:"2"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type CacheConfig struct {
	Backend  string        `envconfig:"CACHE_BACKEND" default:"memory"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"6h"`
	Capacity int           `envconfig:"CACHE_CAPACITY" default:"500"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// SlogLevel maps the configured level name to a slog.Level.
// Unknown names fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	ErrMissingAPIKey       = errors.New("YOUTUBE_API_KEY is required")
	ErrInvalidCacheBackend = errors.New("CACHE_BACKEND must be memory or redis")
)

// Validate checks the settings the binaries cannot run without.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return ErrInvalidCacheBackend
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

// Load reads an optional .env file from the working directory and then
// processes the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
