package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	API     APIConfig
	Session SessionConfig
	Watch   WatchConfig
}

// APIConfig holds settings for the backend API connection
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds settings for the persisted session store
type SessionConfig struct {
	DatabasePath string
	KeyPath      string
}

// WatchConfig holds settings for the periodic portfolio refresh
type WatchConfig struct {
	Schedule string // cron expression
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	dataDir := getEnv("TRACKER_DATA_DIR", defaultDataDir())

	timeout, err := time.ParseDuration(getEnv("TRACKER_HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKER_HTTP_TIMEOUT: %w", err)
	}

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("TRACKER_API_URL", "http://localhost:8080/api"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			DatabasePath: filepath.Join(dataDir, "session.db"),
			KeyPath:      filepath.Join(dataDir, "session.key"),
		},
		Watch: WatchConfig{
			Schedule: getEnv("TRACKER_WATCH_SCHEDULE", "@every 30s"),
		},
	}

	return config, nil
}

// defaultDataDir places client state under the user config directory,
// falling back to the working directory when it cannot be determined.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".tracker"
	}
	return filepath.Join(base, "portfolio-tracker")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
