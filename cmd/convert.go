package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackx/internal/controller"
	"github.com/desertthunder/trackx/internal/formatter"
	"github.com/desertthunder/trackx/internal/models"
	"github.com/desertthunder/trackx/internal/shared"
	"github.com/urfave/cli/v3"
)

// consolePorts binds the controller to a single command-line invocation.
//
// Renders are recorded for the caller to format afterwards; busy and copy transitions are logged.
type consolePorts struct {
	mu        sync.Mutex
	input     string
	logger    *log.Logger
	result    *models.ConversionResult
	errText   string
	copyLabel string
}

func (p *consolePorts) Value() string { return p.input }

func (p *consolePorts) SetBusy(busy bool) {
	if busy {
		p.logger.Debug("converting", "url", p.input)
	}
}

func (p *consolePorts) ShowResult(r models.ConversionResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = &r
}

func (p *consolePorts) ClearResult() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = nil
}

func (p *consolePorts) ShowCopyStatus(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.copyLabel = label
	p.logger.Debug("copy status", "label", label)
}

func (p *consolePorts) ShowError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errText = msg
}

func (p *consolePorts) ClearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errText = ""
}

func (r *Runner) newController(ports *consolePorts) (*controller.Controller, error) {
	return controller.New(controller.Options{
		Ports: controller.Ports{
			Input:     ports,
			Result:    ports,
			Error:     ports,
			Busy:      ports,
			Clipboard: r.clipboard,
		},
		Converter:    r.api,
		Patterns:     r.patterns(),
		Logger:       r.logger,
		CopyAckDelay: r.config.CopyAckDelay(),
	})
}

// Convert submits one link and prints the outcome in the requested format.
//
// Failures are printed too (as "Error: ..." or a JSON object with an "error" key) before the error is returned.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	link := cmd.StringArg("url")
	if link == "" {
		return fmt.Errorf("%w: url is required", shared.ErrMissingArgument)
	}

	render, err := formatter.Lookup(cmd.String("format"))
	if err != nil {
		return err
	}

	ports := &consolePorts{input: link, logger: r.logger}
	ctrl, err := r.newController(ports)
	if err != nil {
		return err
	}

	submitErr := ctrl.Submit(ctx)

	out, err := render(ctrl.Last())
	if err != nil {
		return err
	}
	if err := r.writeBytes(out); err != nil {
		return err
	}
	if submitErr != nil {
		return userError(submitErr)
	}

	last := ctrl.Last()
	if cmd.Bool("copy") {
		if err := ctrl.Copy(ctx); err != nil {
			r.logger.Warn("could not copy link", "err", err)
		} else {
			r.logger.Info("copied to clipboard", "url", last.ConvertedURL)
		}
	}
	if cmd.Bool("open") {
		if err := r.openBrowser(last.ConvertedURL); err != nil {
			r.logger.Warn("could not open browser", "err", err)
		}
	}

	return nil
}

// detection is the JSON shape printed by [Runner.Detect].
type detection struct {
	Direction models.Direction  `json:"direction"`
	Source    string            `json:"source"`
	Target    string            `json:"target"`
	Endpoint  string            `json:"endpoint"`
	Payload   map[string]string `json:"payload"`
	ResultKey string            `json:"result_key"`
}

// Detect classifies a link and prints the request it would produce. Nothing is sent.
func (r *Runner) Detect(ctx context.Context, cmd *cli.Command) error {
	link := cmd.StringArg("url")
	if link == "" {
		return fmt.Errorf("%w: url is required", shared.ErrMissingArgument)
	}

	dir, normalized, err := r.patterns().Classify(link)
	if err != nil {
		return userError(err)
	}

	d := detection{
		Direction: dir,
		Source:    dir.Source(),
		Target:    dir.Target(),
		Endpoint:  r.api.BaseURL() + dir.Endpoint(),
		Payload:   map[string]string{dir.RequestKey(): normalized},
		ResultKey: dir.ResultKey(),
	}

	if cmd.Bool("json") {
		return r.writeJSON(d, true)
	}

	r.writePlain("Direction: %s (%s -> %s)\n", d.Direction, d.Source, d.Target)
	r.writePlain("Endpoint:  POST %s\n", d.Endpoint)
	r.writePlain("Payload:   {%q: %q}\n", dir.RequestKey(), normalized)
	return r.writePlain("Expects:   %s\n", d.ResultKey)
}

// Health reports the backend's /health status.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	r.logger.Debug("checking backend health", "url", r.api.BaseURL())

	status, err := r.api.Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", userError(err))
	}

	r.writePlain("Backend: %s\n", r.api.BaseURL())
	r.writePlain("Status:  %s\n", status)

	if status != "ok" {
		return fmt.Errorf("%w: backend reports %q", shared.ErrServiceUnavailable, status)
	}
	return nil
}
