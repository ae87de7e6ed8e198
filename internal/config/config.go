package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL  string
	APITimeout  time.Duration
	SessionFile string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL: "http://localhost:8000/api", // default backend address
		APITimeout: 30 * time.Second,
	}

	if base := os.Getenv("STORE_API_URL"); base != "" {
		if _, err := url.Parse(base); err != nil {
			return nil, fmt.Errorf("invalid STORE_API_URL: %w", err)
		}
		cfg.APIBaseURL = base
	}

	if raw := os.Getenv("STORE_API_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("STORE_API_TIMEOUT must be a positive number of seconds, got %q", raw)
		}
		cfg.APITimeout = time.Duration(secs) * time.Second
	}

	if path := os.Getenv("STORE_SESSION_FILE"); path != "" {
		cfg.SessionFile = path
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory for session file: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, ".mobilestore", "session.json")
	}

	return cfg, nil
}
