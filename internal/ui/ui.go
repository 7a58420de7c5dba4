package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackx/internal/controller"
	"github.com/desertthunder/trackx/internal/formatter"
	"github.com/desertthunder/trackx/internal/models"
	"github.com/desertthunder/trackx/internal/services"
	"github.com/desertthunder/trackx/internal/shared"
)

// FocusTarget is the control that receives enter.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusButton
)

const (
	buttonLabel = "[ Convert ]"
	placeholder = "https://open.spotify.com/track/..."
)

// Options holds the dependencies for [NewModel].
type Options struct {
	Converter    services.Converter
	Clipboard    controller.Clipboard // defaults to [shared.SystemClipboard]
	Patterns     services.PatternTable
	Logger       *log.Logger
	CopyAckDelay time.Duration
	OpenBrowser  func(string) error // defaults to [shared.OpenBrowser]
}

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	ctrl        *controller.Controller
	ports       *Ports
	logger      *log.Logger
	openBrowser func(string) error
	focus       FocusTarget
	input       textinput.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	width       int
	busy        bool
	enabled     bool
	result      *models.ConversionResult
	errText     string
	copyLabel   string
	status      string
}

// NewModel wires a [controller.Controller] to bubbletea-backed [Ports] and returns the view model.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = shared.SystemClipboard{}
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	ports := NewPorts()
	ctrl, err := controller.New(controller.Options{
		Ports: controller.Ports{
			Input:     ports,
			Submit:    ports,
			Result:    ports,
			Error:     ports,
			Busy:      ports,
			Clipboard: opts.Clipboard,
		},
		Converter:    opts.Converter,
		Patterns:     opts.Patterns,
		Logger:       opts.Logger,
		CopyAckDelay: opts.CopyAckDelay,
	})
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Prompt = "URL › "
	input.Placeholder = placeholder
	input.CharLimit = 512
	input.Width = 56
	input.Focus()

	return &Model{
		ctx:         ctx,
		ctrl:        ctrl,
		ports:       ports,
		logger:      opts.Logger,
		openBrowser: opts.OpenBrowser,
		focus:       FocusInput,
		input:       input,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(NewStyle("#7D56F4"))),
		help:        help.New(),
		keys:        newKeyMap(),
		enabled:     true,
		copyLabel:   controller.CopyLabelDefault,
	}, nil
}

// Close stops delivery of queued renders once the program has exited.
func (m *Model) Close() {
	m.ports.Close()
}

// Init starts the cursor blink and begins draining controller renders.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the field, the button, and whichever of the busy, error, or result views is active.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("trackx · Spotify ⇄ YouTube Music"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(m.renderButton())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(fmt.Sprintf("%s Converting…", m.spinner.View()))
	case m.errText != "":
		b.WriteString(styles.err.Render(m.errText))
	case m.result != nil:
		b.WriteString(m.renderResult())
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.warn.Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.ports.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.copy):
		return m, m.copy()
	case key.Matches(msg, m.keys.open):
		return m, m.open()
	}

	if m.focus != FocusInput {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ports.setValue(m.input.Value())
	return m, cmd
}

// handleMsg applies a controller render. Port messages re-arm the event reader; command results do not.
func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBusy:
		m.busy = msg.data.(bool)
		if m.busy {
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.waitForEvent())
		}
	case MsgSubmitEnabled:
		m.enabled = msg.data.(bool)
	case MsgResult:
		r := msg.data.(models.ConversionResult)
		m.result = &r
		m.copyLabel = controller.CopyLabelDefault
	case MsgClearResult:
		m.result = nil
		m.copyLabel = controller.CopyLabelDefault
	case MsgCopyStatus:
		m.copyLabel = msg.data.(string)
	case MsgError:
		m.errText = msg.data.(string)
	case MsgClearError:
		m.errText = ""

	case MsgSubmitDone:
		if errors.Is(msg.err(), shared.ErrBusy) {
			m.status = "A conversion is already in progress."
		}
		return m, nil
	case MsgCopyDone:
		if errors.Is(msg.err(), shared.ErrNothingToCopy) {
			m.status = "Nothing to copy yet."
		}
		return m, nil
	case MsgBrowserOpened:
		if err := msg.err(); err != nil {
			m.logger.Warn("failed to open browser", "err", err)
			m.status = fmt.Sprintf("Could not open browser: %v", err)
		} else {
			m.status = "Opened in browser."
		}
		return m, nil
	}

	return m, m.waitForEvent()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusInput {
		m.focus = FocusButton
		m.input.Blur()
		return nil
	}
	m.focus = FocusInput
	return m.input.Focus()
}

// submit is shared by enter on the field and enter on the button.
func (m *Model) submit() tea.Cmd {
	if !m.enabled {
		return nil
	}
	m.status = ""
	m.ports.setValue(m.input.Value())
	return m.guarded(submitDoneMsg, func() error { return m.ctrl.Submit(m.ctx) })
}

func (m *Model) copy() tea.Cmd {
	return m.guarded(copyDoneMsg, func() error { return m.ctrl.Copy(m.ctx) })
}

// guarded runs fn as a command. A panic is reported as a network error instead of ending the program;
// the controller has already released its busy state by then.
func (m *Model) guarded(done func(error) Msg, fn func() error) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("command panicked", "panic", r)
				msg = done(fmt.Errorf("%w: %v", shared.ErrNetwork, r))
			}
		}()
		return done(fn())
	}
}

func (m *Model) open() tea.Cmd {
	if m.result == nil || !m.result.OK() {
		return nil
	}
	link := m.result.ConvertedURL
	return func() tea.Msg {
		return browserOpenedMsg(m.openBrowser(link))
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.ports.events:
			return msg
		case <-m.ports.done:
			return nil
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) renderButton() string {
	switch {
	case !m.enabled:
		return styles.disabled.Render(buttonLabel)
	case m.focus == FocusButton:
		return styles.focused.Render(buttonLabel)
	default:
		return styles.button.Render(buttonLabel)
	}
}

func (m *Model) renderResult() string {
	r := m.result
	var b strings.Builder

	heading := "✓ Converted"
	if r.Direction != "" {
		heading = fmt.Sprintf("✓ Converted to %s", r.Direction.Target())
	}
	b.WriteString(styles.ok.Render(heading))
	b.WriteString("\n")
	b.WriteString(styles.link.Render(r.ConvertedURL))
	b.WriteString("\n")

	if t := r.Track; t != nil && t.Title != "" {
		line := t.Title
		if t.Artist != "" {
			line = fmt.Sprintf("%s - %s", t.Artist, t.Title)
		}
		if t.DurationMS > 0 {
			line = fmt.Sprintf("%s [%s]", line, formatter.FormatDuration(t.DurationMS))
		}
		b.WriteString(fmt.Sprintf("\n%s", line))
		if t.Album != "" {
			b.WriteString(fmt.Sprintf("\nAlbum: %s", t.Album))
		}
		b.WriteString("\n")
	}
	if r.Confidence > 0 {
		b.WriteString(styles.help.Render(fmt.Sprintf("Match confidence: %s", formatter.FormatConfidence(r.Confidence))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderCopyLabel())
	return b.String()
}

func (m *Model) renderCopyLabel() string {
	label := fmt.Sprintf("[ %s ]", m.copyLabel)
	switch m.copyLabel {
	case controller.CopyLabelCopied:
		return styles.ok.Render(label)
	case controller.CopyLabelFailed:
		return styles.err.Render(label)
	default:
		return styles.button.Render(label)
	}
}
