package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     int
	Env      string
	LogLevel string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string // optional, alias overrides only

	// Statistics provider
	StatsProvider        string // "http" or "clickhouse"
	StatsProviderURL     string
	StatsProviderKey     string
	StatsProviderTimeout time.Duration
	StatsProviderRPS     int
	StatsTimeWindow      string
	StatsCacheTTL        time.Duration

	// Name resolution
	AliasFile string

	// Narrative generator
	NarrativeURL     string
	NarrativeTimeout time.Duration

	// Simulator
	SimIterations       int
	SimNoiseLevel       float64
	SimUpsetProbability float64
	SimMomentumFactor   float64
	SimSeed             uint64

	// Ingestion worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Load loads configuration from environment variables (and a .env file when present).
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvInt("PORT", 8080),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RedisURL: getEnv("REDIS_URL", ""),

		StatsProvider:        strings.ToLower(getEnv("STATS_PROVIDER", "http")),
		StatsProviderURL:     getEnv("STATS_PROVIDER_URL", ""),
		StatsProviderKey:     getEnv("STATS_PROVIDER_KEY", ""),
		StatsProviderTimeout: getEnvDuration("STATS_PROVIDER_TIMEOUT", 3*time.Second),
		StatsProviderRPS:     getEnvInt("STATS_PROVIDER_RPS", 10),
		StatsTimeWindow:      getEnv("STATS_TIME_WINDOW", "LAST_3_MONTHS"),
		StatsCacheTTL:        getEnvDuration("STATS_CACHE_TTL", 5*time.Minute),

		AliasFile: getEnv("ALIAS_FILE", ""),

		NarrativeURL:     getEnv("NARRATIVE_URL", ""),
		NarrativeTimeout: getEnvDuration("NARRATIVE_TIMEOUT", 8*time.Second),

		SimIterations:       getEnvInt("SIM_ITERATIONS", 1000),
		SimNoiseLevel:       getEnvFloat("SIM_NOISE_LEVEL", 0.2),
		SimUpsetProbability: getEnvFloat("SIM_UPSET_PROBABILITY", 0.15),
		SimMomentumFactor:   getEnvFloat("SIM_MOMENTUM_FACTOR", 0.5),
		SimSeed:             uint64(getEnvInt("SIM_SEED", 0)),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
		BatchSize:     getEnvInt("BATCH_SIZE", 500),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	switch cfg.StatsProvider {
	case "http", "clickhouse":
	default:
		return nil, fmt.Errorf("unsupported STATS_PROVIDER: %s", cfg.StatsProvider)
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.StatsProvider == "http" && cfg.StatsProviderURL == "" {
		return nil, fmt.Errorf("missing required environment variable: STATS_PROVIDER_URL")
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
