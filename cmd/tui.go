package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/trackx/internal/shared"
	"github.com/desertthunder/trackx/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/trackx-tui.log"

// TUI launches the interactive converter.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	model, err := ui.NewModel(ctx, ui.Options{
		Converter:    r.api,
		Clipboard:    r.clipboard,
		Patterns:     r.patterns(),
		Logger:       r.logger,
		CopyAckDelay: r.config.CopyAckDelay(),
		OpenBrowser:  r.openBrowser,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
