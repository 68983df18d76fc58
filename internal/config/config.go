// Package config resolves wikitop settings.
//
// Precedence, lowest to highest: built-in defaults, the TOML config file,
// environment variables (a .env file in the working directory is loaded first),
// then command-line flags applied by the caller.
//
// # Environment Variables
//
//   - WIKITOP_LANGUAGE: requested wiki language (default: pt; only pt is supported)
//   - WIKITOP_MAX_RESULTS: rows per day (default: 5, clamped to 1..1000)
//   - WIKITOP_API_BASE_URL: pageviews REST root (default: https://wikimedia.org/api/rest_v1)
//   - WIKITOP_USER_AGENT: User-Agent sent to the API
//   - WIKITOP_TIMEOUT_SEC: HTTP timeout in seconds (default: 30)
//   - WIKITOP_LOG_LEVEL: debug, info, warn or error (default: info)
//   - WIKITOP_SKIP_ABSENT_DAYS: skip days without data in range fetches (default: false)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/thesavant42/wikitop/internal/api"
	"github.com/thesavant42/wikitop/internal/models"
)

// Validation errors
var (
	ErrInvalidTimeout  = errors.New("timeout must be at least 1 second")
	ErrInvalidLogLevel = errors.New("log level must be one of: debug, info, warn, error")
	ErrMissingBaseURL  = errors.New("API base URL is required")
)

// Config holds the resolved settings
type Config struct {
	Language       string
	MaxResults     int
	APIBaseURL     string
	UserAgent      string
	Timeout        time.Duration
	LogLevel       string
	SkipAbsentDays bool
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Language:   models.SupportedLanguage,
		MaxResults: 5,
		APIBaseURL: api.DefaultBaseURL,
		UserAgent:  api.DefaultUserAgent,
		Timeout:    30 * time.Second,
		LogLevel:   "info",
	}
}

// Load builds the configuration from defaults, the TOML file at path (a
// missing file is not an error; empty path skips it) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		fc.apply(cfg)
	}

	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WIKITOP_LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("WIKITOP_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WIKITOP_MAX_RESULTS: %w", err)
		}
		c.MaxResults = n
	}
	if v := os.Getenv("WIKITOP_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("WIKITOP_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("WIKITOP_TIMEOUT_SEC"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WIKITOP_TIMEOUT_SEC: %w", err)
		}
		c.Timeout = time.Duration(n) * time.Second
	}
	if v := os.Getenv("WIKITOP_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("WIKITOP_SKIP_ABSENT_DAYS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WIKITOP_SKIP_ABSENT_DAYS: %w", err)
		}
		c.SkipAbsentDays = b
	}
	return nil
}

// Validate checks the configuration. MaxResults and Language are not
// rejected here: the analyzer clamps and overrides them.
func (c *Config) Validate() error {
	if c.Timeout < time.Second {
		return ErrInvalidTimeout
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return ErrMissingBaseURL
	}
	if _, err := c.Level(); err != nil {
		return ErrInvalidLogLevel
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() (log.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		return log.ParseLevel(c.LogLevel)
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Language: %s, MaxResults: %d, API: %s, Timeout: %s, SkipAbsentDays: %v}",
		c.Language, c.MaxResults, c.APIBaseURL, c.Timeout, c.SkipAbsentDays,
	)
}
