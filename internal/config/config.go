// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for databases (evidence.db, cache.db)
	Port     int
	DevMode  bool
	LogLevel string

	// CORSOrigins are the allowed origins for the HTTP API.
	CORSOrigins []string

	// Evidence bundle settings. When S3Bucket is set the evidence database
	// is downloaded at startup before loading.
	Evidence EvidenceConfig

	// Report generation via an OpenAI-compatible API. Empty APIKey
	// disables the /api/report endpoint.
	Report ReportConfig
}

// EvidenceConfig locates the citation table.
type EvidenceConfig struct {
	S3Bucket   string
	S3Key      string
	S3Region   string
	S3Endpoint string // optional, for S3-compatible stores (e.g. R2/MinIO)
	AccessKey  string
	SecretKey  string
}

// ReportConfig holds LLM report generation settings.
type ReportConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	CacheTTL time.Duration
}

// getEnv retrieves an environment variable value, returning the fallback
// if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load reads configuration from environment variables (.env file supported).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("LIPIDLENS_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:     absDataDir,
		Port:        getEnvAsInt("PORT", 8080),
		DevMode:     getEnvAsBool("DEV_MODE", false),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		Evidence: EvidenceConfig{
			S3Bucket:   getEnv("EVIDENCE_S3_BUCKET", ""),
			S3Key:      getEnv("EVIDENCE_S3_KEY", "evidence.db"),
			S3Region:   getEnv("EVIDENCE_S3_REGION", "auto"),
			S3Endpoint: getEnv("EVIDENCE_S3_ENDPOINT", ""),
			AccessKey:  getEnv("EVIDENCE_S3_ACCESS_KEY", ""),
			SecretKey:  getEnv("EVIDENCE_S3_SECRET_KEY", ""),
		},
		Report: ReportConfig{
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			BaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			CacheTTL: getEnvAsDuration("REPORT_CACHE_TTL", 24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Evidence.S3Bucket != "" && c.Evidence.S3Key == "" {
		return fmt.Errorf("EVIDENCE_S3_KEY is required when EVIDENCE_S3_BUCKET is set")
	}
	return nil
}

// EvidenceDBPath is the on-disk location of the citation database.
func (c *Config) EvidenceDBPath() string {
	return filepath.Join(c.DataDir, "evidence.db")
}

// CacheDBPath is the on-disk location of the report cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.DataDir, "cache.db")
}
