// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/trackx/internal/models"
)

// MockConverter is a test double for [services.Converter].
//
// When Gate is non-nil each call blocks until Gate is closed or receives, which lets tests hold a request in flight.
type MockConverter struct {
	mu     sync.Mutex
	calls  []models.ConversionRequest
	Result *models.ConversionResult
	Err    error
	Gate   chan struct{}
	// Started receives once per call, before blocking on Gate.
	Started chan struct{}
	// PanicWith, when non-nil, is raised after the call is recorded.
	PanicWith any
}

func (m *MockConverter) Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.PanicWith != nil {
		panic(m.PanicWith)
	}
	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.Result, m.Err
}

// Calls returns a copy of every request received so far.
func (m *MockConverter) Calls() []models.ConversionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ConversionRequest(nil), m.calls...)
}

// MockClipboard records writes and optionally fails them.
type MockClipboard struct {
	mu     sync.Mutex
	Err    error
	writes []string
}

func (m *MockClipboard) WriteText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.writes = append(m.writes, text)
	return nil
}

func (m *MockClipboard) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

// RecordingPorts implements every controller port and records what was rendered.
type RecordingPorts struct {
	mu         sync.Mutex
	Input      string
	Busy       bool
	BusyEvents []bool
	Enabled    bool
	Result     *models.ConversionResult
	Error      string
	CopyLabels []string
	// PanicOnResult makes ShowResult panic, to exercise guaranteed release of the busy indicator.
	PanicOnResult bool
}

func NewRecordingPorts(input string) *RecordingPorts {
	return &RecordingPorts{Input: input, Enabled: true}
}

func (p *RecordingPorts) SetInput(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Input = v
}

func (p *RecordingPorts) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Input
}

func (p *RecordingPorts) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Enabled = enabled
}

func (p *RecordingPorts) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Busy = busy
	p.BusyEvents = append(p.BusyEvents, busy)
}

func (p *RecordingPorts) ShowResult(r models.ConversionResult) {
	if p.PanicOnResult {
		panic("render failed")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Result = &r
}

func (p *RecordingPorts) ClearResult() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Result = nil
}

func (p *RecordingPorts) ShowCopyStatus(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CopyLabels = append(p.CopyLabels, label)
}

func (p *RecordingPorts) ShowError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Error = msg
}

func (p *RecordingPorts) ClearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Error = ""
}

// Snapshot returns the rendered result, error text, and busy flag under the lock.
func (p *RecordingPorts) Snapshot() (*models.ConversionResult, string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Result, p.Error, p.Busy
}

// LastCopyLabel returns the most recent copy label, or "" if none was shown.
func (p *RecordingPorts) LastCopyLabel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.CopyLabels) == 0 {
		return ""
	}
	return p.CopyLabels[len(p.CopyLabels)-1]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
