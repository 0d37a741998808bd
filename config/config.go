package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all ambient configuration for the data-source layer.
type Config struct {
	// DebugEnabled turns on HTTP request trace logging in the API adapter.
	DebugEnabled bool

	// HTTPTimeout is the default timeout for the API adapter's built-in
	// client. A caller-supplied client overrides it entirely.
	HTTPTimeout time.Duration
}

const defaultHTTPTimeout = 30 * time.Second

// LoadConfig loads configuration from environment variables.
// A .env file is automatically loaded via the godotenv autoload import.
func LoadConfig() *Config {
	cfg := &Config{
		DebugEnabled: getBoolEnvWithDefault("DEBUG", false),
		HTTPTimeout:  getDurationEnvWithDefault("OBJECTUI_HTTP_TIMEOUT", defaultHTTPTimeout),
	}

	if cfg.DebugEnabled {
		fmt.Printf("🐛 DEBUG: HTTP trace logging enabled (timeout %s)\n", cfg.HTTPTimeout)
	}

	return cfg
}

// getBoolEnvWithDefault gets a boolean environment variable with a default fallback.
func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnvWithDefault gets a duration environment variable ("30s",
// "2m") with a default fallback.
func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
