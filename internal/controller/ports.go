package controller

import (
	"context"
	"time"

	"github.com/desertthunder/trackx/internal/models"
)

// InputPort exposes the current contents of the URL field.
type InputPort interface {
	Value() string
}

// SubmitPort is the activation control; it is disabled while a request is in flight.
type SubmitPort interface {
	SetEnabled(enabled bool)
}

// ResultPort renders a converted URL and the copy control's label.
type ResultPort interface {
	ShowResult(result models.ConversionResult)
	ClearResult()
	ShowCopyStatus(label string)
}

// ErrorPort renders a user-facing error message.
type ErrorPort interface {
	ShowError(msg string)
	ClearError()
}

// BusyPort toggles the in-progress indicator.
type BusyPort interface {
	SetBusy(busy bool)
}

// Clipboard writes text to the platform clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Ports bundles the view bindings handed to [New].
//
// Submit is optional; every other port is required.
type Ports struct {
	Input     InputPort
	Submit    SubmitPort
	Result    ResultPort
	Error     ErrorPort
	Busy      BusyPort
	Clipboard Clipboard
}

// Timer is the part of [time.Timer] the controller needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. [time.AfterFunc] is the default.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type noopSubmit struct{}

func (noopSubmit) SetEnabled(bool) {}
