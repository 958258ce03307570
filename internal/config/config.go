package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Upstream feeds
	OpportunitiesURL string
	ResultsURL       string
	FeedTimeout      time.Duration

	// Pipeline pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	// Staking
	Bankroll      float64
	MaxStakePct   float64
	KellyFraction float64
	Bookmaker     string

	// Phase scheduling
	CollectInterval  time.Duration
	ResolveInterval  time.Duration
	DiagnoseInterval time.Duration
	DiagnosisWindow  int
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		FeedTimeout: getEnvDuration("FEED_TIMEOUT", 30*time.Second),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
		BatchSize:     getEnvInt("BATCH_SIZE", 200),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),

		Bankroll:      getEnvFloat("BANKROLL", 100.0),
		MaxStakePct:   getEnvFloat("MAX_STAKE_PCT", 5.0),
		KellyFraction: getEnvFloat("KELLY_FRACTION", 0.25),
		Bookmaker:     getEnv("BOOKMAKER", "pinnacle"),

		CollectInterval:  getEnvDuration("COLLECT_INTERVAL", 10*time.Minute),
		ResolveInterval:  getEnvDuration("RESOLVE_INTERVAL", 15*time.Minute),
		DiagnoseInterval: getEnvDuration("DIAGNOSE_INTERVAL", 1*time.Hour),
		DiagnosisWindow:  getEnvInt("DIAGNOSIS_WINDOW_DAYS", 7),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}
	if cfg.OpportunitiesURL, err = getEnvRequired("OPPORTUNITIES_URL"); err != nil {
		return nil, err
	}
	if cfg.ResultsURL, err = getEnvRequired("RESULTS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
