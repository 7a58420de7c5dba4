package shared

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("conversion requested", "direction", "spotify-to-youtube")

		if !strings.Contains(buf.String(), "conversion requested") {
			t.Errorf("expected message in output, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "direction=spotify-to-youtube") {
			t.Errorf("expected key-value pair in output, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "request_id", "abc")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "request_id=abc") {
			t.Errorf("expected child fields in output, got %q", buf.String())
		}
	})

	t.Run("ApplyLogLevel", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})

		if err := ApplyLogLevel(logger, "debug"); err != nil {
			t.Fatalf("ApplyLogLevel() error = %v", err)
		}
		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", logger.GetLevel())
		}

		if err := ApplyLogLevel(logger, ""); err != nil {
			t.Errorf("empty level should be a no-op, got %v", err)
		}

		if err := ApplyLogLevel(logger, "loud"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "trackx.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("written to file")
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid UUID, got %s", a)
	}
}

func TestOpenBrowser(t *testing.T) {
	var started []string
	origStart, origRuntime := startCommand, getRuntime
	t.Cleanup(func() {
		startCommand = origStart
		getRuntime = origRuntime
	})
	startCommand = func(cmd *exec.Cmd) error {
		started = append(started, strings.Join(cmd.Args, " "))
		return nil
	}

	tc := []struct {
		name    string
		goos    string
		link    string
		want    string
		wantErr bool
	}{
		{name: "linux", goos: "linux", link: "https://open.spotify.com/track/abc", want: "xdg-open https://open.spotify.com/track/abc"},
		{name: "darwin", goos: "darwin", link: "https://music.youtube.com/watch?v=abc", want: "open https://music.youtube.com/watch?v=abc"},
		{name: "unsupported platform", goos: "plan9", link: "https://example.com", wantErr: true},
		{name: "non-http scheme", goos: "linux", link: "file:///etc/passwd", wantErr: true},
		{name: "not a URL", goos: "linux", link: "no match", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			started = nil
			getRuntime = func() string { return tt.goos }

			err := OpenBrowser(tt.link)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenBrowser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if len(started) != 0 {
					t.Errorf("expected no command to start, got %v", started)
				}
				return
			}
			if len(started) != 1 || started[0] != tt.want {
				t.Errorf("started = %v, want %s", started, tt.want)
			}
		})
	}
}
