package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file
type FileConfig struct {
	Fetch FetchConfig `toml:"fetch"`
	API   APIConfig   `toml:"api"`
	Log   LogConfig   `toml:"log"`
}

// FetchConfig maps fetch-related settings
type FetchConfig struct {
	Language       *string `toml:"language"`
	MaxResults     *int    `toml:"max-results"`
	SkipAbsentDays *bool   `toml:"skip-absent-days"`
}

// APIConfig maps pageviews API settings
type APIConfig struct {
	BaseURL    *string `toml:"base-url"`
	UserAgent  *string `toml:"user-agent"`
	TimeoutSec *int    `toml:"timeout-sec"`
}

// LogConfig maps logging settings
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return fc, nil
}

func (fc FileConfig) apply(c *Config) {
	if fc.Fetch.Language != nil {
		c.Language = *fc.Fetch.Language
	}
	if fc.Fetch.MaxResults != nil {
		c.MaxResults = *fc.Fetch.MaxResults
	}
	if fc.Fetch.SkipAbsentDays != nil {
		c.SkipAbsentDays = *fc.Fetch.SkipAbsentDays
	}
	if fc.API.BaseURL != nil {
		c.APIBaseURL = *fc.API.BaseURL
	}
	if fc.API.UserAgent != nil {
		c.UserAgent = *fc.API.UserAgent
	}
	if fc.API.TimeoutSec != nil {
		c.Timeout = time.Duration(*fc.API.TimeoutSec) * time.Second
	}
	if fc.Log.Level != nil {
		c.LogLevel = *fc.Log.Level
	}
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultPath returns the default TOML config path.
func DefaultPath() string {
	return filepath.Join(XDGConfigHome(), "wikitop", "config.toml")
}
