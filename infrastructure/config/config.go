package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Remote recipe service
	APIBaseURL     string
	AuthToken      string
	RequestTimeout time.Duration

	// Local draft storage
	DraftDBPath string

	// Connectivity
	// ConnectivityFile points at the JSON state file the platform maintains.
	// Empty means connectivity comes from an explicit flag or defaults to wifi.
	ConnectivityFile string

	// Logging
	Environment string
	LogLevel    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIBaseURL:       getEnv("COOKBOOK_API_URL", "http://localhost:8990"),
		AuthToken:        getEnv("COOKBOOK_AUTH_TOKEN", ""),
		RequestTimeout:   time.Duration(getEnvInt("COOKBOOK_REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		DraftDBPath:      getEnv("COOKBOOK_DRAFT_DB", defaultDraftDBPath()),
		ConnectivityFile: getEnv("COOKBOOK_CONNECTIVITY_FILE", ""),
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("COOKBOOK_API_URL is required")
	}
	if c.DraftDBPath == "" {
		return fmt.Errorf("COOKBOOK_DRAFT_DB is required")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultDraftDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cookbook-drafts.db"
	}
	return filepath.Join(home, ".cookbook", "drafts.db")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
