package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Source credentials (adapters without credentials return no articles)
	NewsAPIKey        string
	NaverClientID     string
	NaverClientSecret string

	// Gemini settings
	GeminiAPIKey     string
	GeminiModel      string
	SummaryBatchSize int

	// Redis (durable article tier)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Source settings
	SourcesConfigPath string
	SourceCacheTTL    time.Duration // fast sources (RSS, Naver)
	SlowSourceTTL     time.Duration // NewsAPI, ClinicalTrials
	SourceTimeout     time.Duration
	RSSTimeout        time.Duration

	// Extractor settings
	ExtractTimeout  time.Duration
	ExtractCacheTTL time.Duration

	// Snapshot settings
	SnapshotPath      string
	SnapshotRetention time.Duration

	// HTTP settings
	Port             string
	RevalidateSecret string

	// Scheduler settings
	RefreshHours []int
	Timezone     string

	// App settings
	Debug         bool
	RetryAttempts int
	RetryDelay    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		GeminiModel:       "gemini-1.5-flash",
		SummaryBatchSize:  10,
		SourcesConfigPath: "configs/sources.yaml",
		SourceCacheTTL:    15 * time.Minute,
		SlowSourceTTL:     1 * time.Hour,
		SourceTimeout:     10 * time.Second,
		RSSTimeout:        15 * time.Second,
		ExtractTimeout:    15 * time.Second,
		ExtractCacheTTL:   24 * time.Hour,
		SnapshotRetention: 30 * 24 * time.Hour,
		Port:              "8080",
		RefreshHours:      []int{7, 19},
		Timezone:          "Asia/Seoul",
		RetryAttempts:     3,
		RetryDelay:        2 * time.Second,
	}

	// Load from environment
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.NaverClientID = os.Getenv("NAVER_CLIENT_ID")
	cfg.NaverClientSecret = os.Getenv("NAVER_CLIENT_SECRET")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.RevalidateSecret = os.Getenv("REVALIDATE_SECRET")

	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvIntOrDefault("REDIS_DB", 0)

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.SnapshotPath = os.Getenv("SNAPSHOT_PATH") // empty disables the file snapshot
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)

	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}

	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.SourceCacheTTL = time.Duration(val) * time.Second
		}
	}

	if v := os.Getenv("SUMMARY_BATCH_SIZE"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.SummaryBatchSize = val
		}
	}

	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.Timezone = v
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SummaryBatchSize <= 0 {
		return fmt.Errorf("SUMMARY_BATCH_SIZE must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}
