// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Model artifacts, produced by the training pipeline
	ModelPath        string // JSON weight file for the in-process classifier
	PreprocessorPath string // feature columns, encoders, scaler
	ModelConfigPath  string // model name + held-out F1 for health reporting

	// ClassifierURL points at an external inference server. When set, the
	// service calls it instead of loading ModelPath.
	ClassifierURL string

	// ReferencePath optionally overrides the built-in bank/merchant tables.
	ReferencePath string

	// Observability
	OTLPEndpoint string
	RateLimitRPM int
}

const (
	DefaultPort      = "8080"
	DefaultEnv       = "development"
	DefaultLogLevel  = "info"
	DefaultRateLimit = 120
)

// Load reads configuration from environment variables
// It loads .env file if present (for local development)
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", DefaultPort),
		Env:              getEnv("ENV", DefaultEnv),
		LogLevel:         getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:      os.Getenv("DATABASE_URL"), // Optional, uses in-memory if not set
		ModelPath:        os.Getenv("MODEL_PATH"),
		PreprocessorPath: os.Getenv("PREPROCESSOR_PATH"),
		ModelConfigPath:  os.Getenv("MODEL_CONFIG_PATH"),
		ClassifierURL:    os.Getenv("CLASSIFIER_URL"),
		ReferencePath:    os.Getenv("REFERENCE_PATH"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		RateLimitRPM:     getEnvInt("RATE_LIMIT_RPM", DefaultRateLimit),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.PreprocessorPath == "" {
		return fmt.Errorf("PREPROCESSOR_PATH is required")
	}
	if c.ModelConfigPath == "" {
		return fmt.Errorf("MODEL_CONFIG_PATH is required")
	}
	if c.ModelPath == "" && c.ClassifierURL == "" {
		return fmt.Errorf("either MODEL_PATH or CLASSIFIER_URL is required")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
