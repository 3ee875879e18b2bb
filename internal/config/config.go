package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Storage
	DBPath string

	// Segmentation defaults
	Granularity            string
	TokenEncoding          string
	ModelMaxTokens         int
	TokenThresholdFraction float64

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("BOOKSEG_API_KEY"),

		DBPath: envOr("DB_PATH", "bookseg.db"),

		Granularity:            envOr("GRANULARITY", "chapter"),
		TokenEncoding:          envOr("TOKEN_ENCODING", "cl100k_base"),
		ModelMaxTokens:         envInt("MODEL_MAX_TOKENS", 32768),
		TokenThresholdFraction: envFloat("TOKEN_THRESHOLD_FRACTION", 0.8),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.ModelMaxTokens <= 0 {
		cfg.ModelMaxTokens = 32768
	}
	if cfg.TokenThresholdFraction <= 0 || cfg.TokenThresholdFraction > 1 {
		cfg.TokenThresholdFraction = 0.8
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// TokenThreshold is the chunk budget used when splitting a chapter: a
// fraction of the model context so prompt scaffolding still fits.
func (c Config) TokenThreshold() int {
	t := int(float64(c.ModelMaxTokens) * c.TokenThresholdFraction)
	if t < 1 {
		t = 1
	}
	return t
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BOOKSEG_API_KEY is required")
	}
	if c.Granularity != "chapter" && c.Granularity != "section" {
		return fmt.Errorf("GRANULARITY must be chapter or section, got %q", c.Granularity)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
