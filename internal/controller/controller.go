package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackx/internal/models"
	"github.com/desertthunder/trackx/internal/services"
	"github.com/desertthunder/trackx/internal/shared"
)

const (
	CopyLabelDefault = "Copy"
	CopyLabelCopied  = "Copied!"
	CopyLabelFailed  = "Failed to copy"

	DefaultCopyAckDelay = 1500 * time.Millisecond
)

// User-facing messages for each error kind.
const (
	MsgEmptyInput      = "Please enter a valid URL."
	MsgUnrecognizedURL = "Unsupported URL format. Please enter a Spotify or YouTube Music track URL."
	MsgEmptyResult     = "The backend returned no converted URL."
	MsgNetwork         = "Network error: could not reach the conversion service."
	MsgRateLimited     = "Rate limit exceeded. Please try again later."
)

// Options configures a [Controller].
type Options struct {
	Ports        Ports
	Converter    services.Converter
	Patterns     services.PatternTable // zero value uses [services.DefaultPatterns]
	Logger       *log.Logger
	CopyAckDelay time.Duration
	AfterFunc    AfterFunc // overrides [time.AfterFunc]; it must not call f synchronously
}

// Controller owns the single UI state variable and is the only thing that transitions it.
type Controller struct {
	mu        sync.Mutex
	state     models.UIState
	last      *models.ConversionResult
	ports     Ports
	converter services.Converter
	patterns  services.PatternTable
	logger    *log.Logger
	ackDelay  time.Duration
	afterFunc AfterFunc
	ackTimer  Timer
	ackGen    uint64
}

// New creates an idle [Controller]. Every port except Submit is required, as is the converter.
func New(opts Options) (*Controller, error) {
	p := opts.Ports
	if p.Input == nil || p.Result == nil || p.Error == nil || p.Busy == nil || p.Clipboard == nil {
		return nil, fmt.Errorf("%w: input, result, error, busy, and clipboard ports are required", shared.ErrMissingArgument)
	}
	if opts.Converter == nil {
		return nil, fmt.Errorf("%w: converter is required", shared.ErrMissingArgument)
	}
	if p.Submit == nil {
		p.Submit = noopSubmit{}
	}
	if len(opts.Patterns.Spotify) == 0 && len(opts.Patterns.YouTube) == 0 {
		opts.Patterns = services.DefaultPatterns()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.CopyAckDelay <= 0 {
		opts.CopyAckDelay = DefaultCopyAckDelay
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = realAfterFunc
	}

	return &Controller{
		state:     models.StateIdle,
		ports:     p,
		converter: opts.Converter,
		patterns:  opts.Patterns,
		logger:    opts.Logger,
		ackDelay:  opts.CopyAckDelay,
		afterFunc: opts.AfterFunc,
	}, nil
}

// State returns the current UI state.
func (c *Controller) State() models.UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Last returns a copy of the most recent result or failure, or nil before the first submission.
func (c *Controller) Last() *models.ConversionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	r := *c.last
	return &r
}

// Submit classifies the input field and, if it is recognized, sends one conversion request.
//
// Returns [shared.ErrBusy] without side effects while a request is in flight. Any other error has already
// been rendered through the error port by the time Submit returns.
func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.begin()
	if err != nil {
		return err
	}
	defer c.release()

	logger := shared.WithLogger(c.logger, "request_id", req.ID, "direction", req.Direction)
	logger.Info("conversion requested", "url", req.SourceURL)

	result, err := c.converter.Convert(ctx, *req)
	return c.complete(logger, req, result, err)
}

// begin clears the previous outcome and either enters Busy or renders a classification error.
func (c *Controller) begin() (*models.ConversionRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.StateBusy {
		c.logger.Debug("submission ignored, request in flight")
		return nil, shared.ErrBusy
	}

	c.cancelAckLocked()
	c.last = nil
	c.ports.Result.ClearResult()
	c.ports.Error.ClearError()

	dir, url, err := c.patterns.Classify(c.ports.Input.Value())
	if err != nil {
		msg := Message(err)
		c.state = models.StateError
		c.last = models.NewConversionFailure("", msg)
		c.logger.Warn("input rejected", "err", err)
		c.ports.Error.ShowError(msg)
		return nil, err
	}

	c.state = models.StateBusy
	c.ports.Busy.SetBusy(true)
	c.ports.Submit.SetEnabled(false)

	return &models.ConversionRequest{
		ID:        shared.GenerateID(),
		Direction: dir,
		SourceURL: url,
	}, nil
}

func (c *Controller) complete(logger *log.Logger, req *models.ConversionRequest, result *models.ConversionResult, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil && (result == nil || !result.OK()) {
		err = fmt.Errorf("%w: converter returned no URL", shared.ErrEmptyConversionResult)
	}

	if err != nil {
		msg := Message(err)
		c.state = models.StateError
		c.last = models.NewConversionFailure(req.Direction, msg)
		logger.Warn("conversion failed", "err", err)
		c.ports.Error.ShowError(msg)
		return err
	}

	c.state = models.StateResult
	c.last = result
	logger.Info("conversion succeeded", "converted", result.ConvertedURL)
	c.ports.Result.ShowResult(*result)
	return nil
}

// release clears the busy indicator. It runs deferred, so a panicking converter or renderer cannot leave
// the controller stuck in Busy. A request that never completed is shown as a network error.
func (c *Controller) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.StateBusy {
		c.state = models.StateError
		c.last = models.NewConversionFailure("", MsgNetwork)
		c.ports.Error.ShowError(MsgNetwork)
	}
	c.ports.Busy.SetBusy(false)
	c.ports.Submit.SetEnabled(true)
}

// Copy writes the converted URL to the clipboard and shows a transient acknowledgement on the result port.
//
// The label reverts to [CopyLabelDefault] after the configured delay. Returns [shared.ErrNothingToCopy]
// outside the Result state and wraps [shared.ErrClipboard] when the write fails.
func (c *Controller) Copy(ctx context.Context) error {
	c.mu.Lock()
	if c.state != models.StateResult || c.last == nil || !c.last.OK() {
		c.mu.Unlock()
		return shared.ErrNothingToCopy
	}
	url := c.last.ConvertedURL
	c.cancelAckLocked()
	gen := c.ackGen
	c.mu.Unlock()

	err := c.ports.Clipboard.WriteText(ctx, url)
	if err != nil {
		err = fmt.Errorf("%w: %w", shared.ErrClipboard, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A submission or newer copy started while the clipboard was busy.
	if gen != c.ackGen {
		return err
	}

	label := CopyLabelCopied
	if err != nil {
		label = CopyLabelFailed
		c.logger.Warn("clipboard write failed", "err", err)
	} else {
		c.logger.Debug("copied to clipboard", "url", url)
	}

	c.ports.Result.ShowCopyStatus(label)
	c.ackTimer = c.afterFunc(c.ackDelay, func() { c.revertCopyLabel(gen) })
	return err
}

func (c *Controller) revertCopyLabel(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.ackGen {
		return
	}
	c.ackTimer = nil
	c.ports.Result.ShowCopyStatus(CopyLabelDefault)
}

func (c *Controller) cancelAckLocked() {
	c.ackGen++
	if c.ackTimer != nil {
		c.ackTimer.Stop()
		c.ackTimer = nil
	}
}

// Message maps an error from classification, conversion, or copying to the text shown to the user.
func Message(err error) string {
	var backendErr *services.BackendError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrEmptyInput):
		return MsgEmptyInput
	case errors.Is(err, shared.ErrUnrecognizedURL):
		return MsgUnrecognizedURL
	case errors.As(err, &backendErr):
		return backendErr.Message()
	case errors.Is(err, shared.ErrEmptyConversionResult):
		return MsgEmptyResult
	case errors.Is(err, shared.ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, shared.ErrClipboard):
		return CopyLabelFailed
	default:
		return MsgNetwork
	}
}
