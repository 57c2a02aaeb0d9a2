// Package config loads boardsync runtime configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPageSize       = 20
	defaultRequestTimeout = 10 * time.Second
	defaultSearchDebounce = 700 * time.Millisecond
)

// Config holds client runtime configuration values.
type Config struct {
	// BaseURL is the root URL of the openboard posts/comments API.
	BaseURL string
	// PageSize is the fixed page size used for post pagination.
	PageSize int
	// RequestTimeout is the per-request timeout for resource calls.
	RequestTimeout time.Duration
	// SearchDebounce is the trailing-edge delay applied to search input.
	SearchDebounce time.Duration
	// LogLevel is the zerolog level name.
	LogLevel string
	// DevMode switches logging to human-readable console output.
	DevMode bool
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		BaseURL:        strings.TrimSpace(os.Getenv("BOARDSYNC_BASE_URL")),
		PageSize:       envPositiveInt("BOARDSYNC_PAGE_SIZE", defaultPageSize),
		RequestTimeout: envPositiveDuration("BOARDSYNC_REQUEST_TIMEOUT", defaultRequestTimeout),
		SearchDebounce: envPositiveDuration("BOARDSYNC_SEARCH_DEBOUNCE", defaultSearchDebounce),
		LogLevel:       strings.ToLower(strings.TrimSpace(envOrDefault("BOARDSYNC_LOG_LEVEL", "info"))),
		DevMode:        envBool("BOARDSYNC_DEV_MODE", false),
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("BOARDSYNC_BASE_URL is required")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		switch strings.ToLower(v) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		default:
			return defaultVal
		}
	}
	return b
}

func envPositiveInt(key string, defaultVal int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return defaultVal
	}
	return parsed
}

func envPositiveDuration(key string, defaultVal time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return defaultVal
	}
	return parsed
}
