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
	NotedocAPIKey string

	// Document backend (remote renderer)
	DocsAPIURL string
	DocsAPIKey string

	// Rendering
	DefaultRenderer string
	DefaultDocTitle string

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

		NotedocAPIKey: os.Getenv("NOTEDOC_API_KEY"),

		DocsAPIURL: os.Getenv("DOCSAPI_URL"),
		DocsAPIKey: os.Getenv("DOCSAPI_API_KEY"),

		DefaultRenderer: envOr("DEFAULT_RENDERER", "docx"),
		DefaultDocTitle: envOr("DEFAULT_DOC_TITLE", "Meeting Notes"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.NotedocAPIKey == "" {
		return fmt.Errorf("NOTEDOC_API_KEY is required")
	}
	if c.DefaultRenderer != "docx" && c.DefaultRenderer != "remote" {
		return fmt.Errorf("DEFAULT_RENDERER must be docx or remote, got %q", c.DefaultRenderer)
	}
	if c.DefaultRenderer == "remote" || c.DocsAPIURL != "" {
		if c.DocsAPIURL == "" {
			return fmt.Errorf("DOCSAPI_URL is required for the remote renderer")
		}
		if c.DocsAPIKey == "" {
			return fmt.Errorf("DOCSAPI_API_KEY is required for the remote renderer")
		}
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
