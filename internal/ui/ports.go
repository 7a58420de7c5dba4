package ui

import (
	"sync"

	"github.com/desertthunder/trackx/internal/controller"
	"github.com/desertthunder/trackx/internal/models"
)

const eventBuffer = 64

var (
	_ controller.InputPort  = (*Ports)(nil)
	_ controller.SubmitPort = (*Ports)(nil)
	_ controller.ResultPort = (*Ports)(nil)
	_ controller.ErrorPort  = (*Ports)(nil)
	_ controller.BusyPort   = (*Ports)(nil)
)

// Ports adapts the controller's view bindings to bubbletea.
//
// The controller calls ports while holding its own lock, so every render is queued on a channel and applied
// later by [Model.Update]. The field value is mirrored here after each keystroke.
type Ports struct {
	mu     sync.Mutex
	value  string
	events chan Msg
	done   chan struct{}
	once   sync.Once
}

func NewPorts() *Ports {
	return &Ports{
		events: make(chan Msg, eventBuffer),
		done:   make(chan struct{}),
	}
}

func (p *Ports) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Ports) setValue(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = v
}

func (p *Ports) SetEnabled(enabled bool)              { p.send(submitEnabledMsg(enabled)) }
func (p *Ports) SetBusy(busy bool)                    { p.send(busyMsg(busy)) }
func (p *Ports) ShowResult(r models.ConversionResult) { p.send(resultMsg(r)) }
func (p *Ports) ClearResult()                         { p.send(clearResultMsg()) }
func (p *Ports) ShowCopyStatus(label string)          { p.send(copyStatusMsg(label)) }
func (p *Ports) ShowError(text string)                { p.send(errorMsg(text)) }
func (p *Ports) ClearError()                          { p.send(clearErrorMsg()) }

// Close drops any renders queued after the program exits.
func (p *Ports) Close() {
	p.once.Do(func() { close(p.done) })
}

func (p *Ports) send(msg Msg) {
	select {
	case p.events <- msg:
	case <-p.done:
	}
}
