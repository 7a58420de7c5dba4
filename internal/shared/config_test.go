package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Backend.BaseURL != "http://localhost:5555" {
			t.Errorf("expected backend URL http://localhost:5555, got %s", config.Backend.BaseURL)
		}

		if config.Backend.RateLimit != 100 || config.Backend.RateWindowMinutes != 10 {
			t.Errorf("expected rate limit 100/10m, got %d/%dm", config.Backend.RateLimit, config.Backend.RateWindowMinutes)
		}

		if len(config.Patterns.Spotify) != 1 || config.Patterns.Spotify[0] != "spotify.com/track/" {
			t.Errorf("unexpected spotify patterns: %v", config.Patterns.Spotify)
		}

		if len(config.Patterns.YouTube) != 2 {
			t.Errorf("expected 2 youtube patterns, got %v", config.Patterns.YouTube)
		}

		if config.CopyAckDelay() != 1500*time.Millisecond {
			t.Errorf("expected copy ack delay 1.5s, got %v", config.CopyAckDelay())
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Backend.BaseURL != DefaultConfig().Backend.BaseURL {
			t.Errorf("created config backend URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[backend]
base_url = "https://convert.example.com"
rate_limit = 0

[patterns]
youtube = ["youtube.com/watch", "youtu.be/"]

[ui]
copy_ack_ms = 2000
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Backend.BaseURL != "https://convert.example.com" {
			t.Errorf("expected backend URL https://convert.example.com, got %s", config.Backend.BaseURL)
		}

		if config.Backend.RateLimit != 0 {
			t.Errorf("expected rate limit 0, got %d", config.Backend.RateLimit)
		}

		if len(config.Patterns.YouTube) != 2 || config.Patterns.YouTube[1] != "youtu.be/" {
			t.Errorf("expected youtube patterns to be replaced, got %v", config.Patterns.YouTube)
		}

		if len(config.Patterns.Spotify) != 1 {
			t.Errorf("expected spotify patterns to keep defaults, got %v", config.Patterns.Spotify)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level to keep default, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[backend\nbase_url = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("TRACKX_BACKEND_URL", "http://10.0.0.2:5555")
		t.Setenv("TRACKX_COPY_ACK_MS", "1400")
		t.Setenv("TRACKX_LOG_LEVEL", "debug")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.Backend.BaseURL != "http://10.0.0.2:5555" {
			t.Errorf("expected env backend URL, got %s", config.Backend.BaseURL)
		}
		if config.UI.CopyAckMS != 1400 {
			t.Errorf("expected copy ack 1400, got %d", config.UI.CopyAckMS)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
		if config.Backend.RateLimit != 100 {
			t.Errorf("unset env should keep file value, got %d", config.Backend.RateLimit)
		}
	})

	t.Run("Environment Override Invalid Number", func(t *testing.T) {
		t.Setenv("TRACKX_COPY_ACK_MS", "soon")

		err := ApplyEnv(DefaultConfig())
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tc := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty base URL", func(c *Config) { c.Backend.BaseURL = "" }},
		{"relative base URL", func(c *Config) { c.Backend.BaseURL = "/convert" }},
		{"negative rate limit", func(c *Config) { c.Backend.RateLimit = -1 }},
		{"rate limit without window", func(c *Config) { c.Backend.RateWindowMinutes = 0 }},
		{"no spotify patterns", func(c *Config) { c.Patterns.Spotify = nil }},
		{"no youtube patterns", func(c *Config) { c.Patterns.YouTube = []string{} }},
		{"zero copy delay", func(c *Config) { c.UI.CopyAckMS = 0 }},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
