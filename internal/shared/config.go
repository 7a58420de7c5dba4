package shared

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Environment variables take precedence over file values.
type Config struct {
	Backend  BackendConfig  `toml:"backend"`
	Patterns PatternsConfig `toml:"patterns"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// BackendConfig points at the conversion service.
type BackendConfig struct {
	BaseURL           string `toml:"base_url" env:"TRACKX_BACKEND_URL"`
	RateLimit         int    `toml:"rate_limit" env:"TRACKX_RATE_LIMIT"`
	RateWindowMinutes int    `toml:"rate_window_minutes" env:"TRACKX_RATE_WINDOW_MINUTES"`
}

// PatternsConfig holds the substring markers used for URL classification.
type PatternsConfig struct {
	Spotify []string `toml:"spotify"`
	YouTube []string `toml:"youtube"`
}

// UIConfig contains presentation settings shared by the TUI and CLI.
type UIConfig struct {
	CopyAckMS int `toml:"copy_ack_ms" env:"TRACKX_COPY_ACK_MS"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"TRACKX_LOG_LEVEL"`
	File  string `toml:"file" env:"TRACKX_LOG_FILE"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their embedded defaults, then environment overrides are applied.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overlays TRACKX_* environment variables onto c.
func ApplyEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("%w: failed to parse environment: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first setting that would leave the client unusable.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("%w: backend.base_url cannot be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend.base_url %q is not an absolute URL", ErrInvalidConfig, c.Backend.BaseURL)
	}
	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("%w: backend.rate_limit cannot be negative", ErrInvalidConfig)
	}
	if c.Backend.RateLimit > 0 && c.Backend.RateWindowMinutes <= 0 {
		return fmt.Errorf("%w: backend.rate_window_minutes must be positive when rate_limit is set", ErrInvalidConfig)
	}
	if len(c.Patterns.Spotify) == 0 || len(c.Patterns.YouTube) == 0 {
		return fmt.Errorf("%w: patterns.spotify and patterns.youtube need at least one entry", ErrInvalidConfig)
	}
	if c.UI.CopyAckMS <= 0 {
		return fmt.Errorf("%w: ui.copy_ack_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

// CopyAckDelay returns how long a copy acknowledgement stays visible.
func (c *Config) CopyAckDelay() time.Duration {
	return time.Duration(c.UI.CopyAckMS) * time.Millisecond
}

// RateWindow returns the rate limiter window.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Backend.RateWindowMinutes) * time.Minute
}
