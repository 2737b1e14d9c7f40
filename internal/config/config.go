package config

import (
	"os"
	"strconv"
	"time"

	"startinsight/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	API       APIConfig
	Collector CollectorConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web (UI) server settings
type ServerConfig struct {
	Port string
}

// APIConfig holds JSON API server settings
type APIConfig struct {
	Port    string
	GinMode string
}

// CollectorConfig holds upstream collector settings
type CollectorConfig struct {
	BaseURL     string
	APIKey      string
	PageSize    int
	MaxPages    int
	RateLimit   int // requests per second against the upstream API
	Timeout     time.Duration
	Concurrency int // parallel detail fetches per page
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		API: APIConfig{
			Port:    getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Collector: CollectorConfig{
			BaseURL:     os.Getenv("UPSTREAM_API_URL"),
			APIKey:      os.Getenv("UPSTREAM_API_KEY"),
			PageSize:    getEnvIntOrDefault("COLLECTOR_PAGE_SIZE", 50),
			MaxPages:    getEnvIntOrDefault("COLLECTOR_MAX_PAGES", 20),
			RateLimit:   getEnvIntOrDefault("COLLECTOR_RATE_LIMIT", 5),
			Timeout:     getEnvDurationOrDefault("COLLECTOR_TIMEOUT", 30*time.Second),
			Concurrency: getEnvIntOrDefault("COLLECTOR_CONCURRENCY", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Collector.PageSize <= 0 {
		return errors.ConfigInvalid("COLLECTOR_PAGE_SIZE must be positive")
	}
	if config.Collector.RateLimit <= 0 {
		return errors.ConfigInvalid("COLLECTOR_RATE_LIMIT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
