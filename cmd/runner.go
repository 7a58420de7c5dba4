package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackx/internal/controller"
	"github.com/desertthunder/trackx/internal/services"
	"github.com/desertthunder/trackx/internal/shared"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	api         *services.APIService
	apiFixed    bool
	httpClient  *http.Client
	clipboard   controller.Clipboard
	openBrowser func(string) error
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When API is nil the backend client is built from Config, and rebuilt after --config is read.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	API         *services.APIService
	HTTPClient  *http.Client
	Clipboard   controller.Clipboard
	OpenBrowser func(string) error
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Clipboard == nil {
		opts.Clipboard = shared.SystemClipboard{}
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	r := &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		api:         opts.API,
		apiFixed:    opts.API != nil,
		httpClient:  opts.HTTPClient,
		clipboard:   opts.Clipboard,
		openBrowser: opts.OpenBrowser,
		logger:      opts.Logger,
		output:      opts.Output,
	}
	if r.api == nil {
		r.api = r.newAPIService()
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		convertCommand, detectCommand, healthCommand, apiCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads --config (if present), overlays TRACKX_* variables, and validates the result.
//
// A missing file falls back to the embedded defaults.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("loaded config", "path", path)
	} else {
		if cmd.IsSet("config") {
			r.logger.Warn("config file not found, using defaults", "path", path)
		}
		if err := shared.ApplyEnv(r.config); err != nil {
			return ctx, err
		}
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}
	if err := shared.ApplyLogLevel(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}

	if !r.apiFixed {
		r.api = r.newAPIService()
	}
	return ctx, nil
}

func (r *Runner) newAPIService() *services.APIService {
	return services.NewAPIService(
		r.config.Backend.BaseURL,
		r.httpClient,
		services.WithRateLimit(r.config.Backend.RateLimit, r.config.RateWindow()),
	)
}

func (r *Runner) patterns() services.PatternTable {
	return services.PatternsFromConfig(r.config.Patterns)
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// userError wraps err with the message the controller would show for it.
func userError(err error) error {
	if msg := controller.Message(err); msg != "" && !errors.Is(err, shared.ErrBackend) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}
