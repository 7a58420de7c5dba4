package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/trackx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBusy MsgKind = iota
	MsgSubmitEnabled
	MsgResult
	MsgClearResult
	MsgCopyStatus
	MsgError
	MsgClearError
	MsgSubmitDone
	MsgCopyDone
	MsgBrowserOpened
)

// busyMsg is the constructor for [MsgBusy]
func busyMsg(busy bool) Msg {
	return Msg{kind: MsgBusy, data: busy}
}

// submitEnabledMsg is the constructor for [MsgSubmitEnabled]
func submitEnabledMsg(enabled bool) Msg {
	return Msg{kind: MsgSubmitEnabled, data: enabled}
}

// resultMsg is the constructor for [MsgResult]
func resultMsg(result models.ConversionResult) Msg {
	return Msg{kind: MsgResult, data: result}
}

func clearResultMsg() Msg {
	return Msg{kind: MsgClearResult}
}

// copyStatusMsg is the constructor for [MsgCopyStatus]
func copyStatusMsg(label string) Msg {
	return Msg{kind: MsgCopyStatus, data: label}
}

// errorMsg is the constructor for [MsgError]
func errorMsg(text string) Msg {
	return Msg{kind: MsgError, data: text}
}

func clearErrorMsg() Msg {
	return Msg{kind: MsgClearError}
}

// submitDoneMsg reports the return value of [controller.Controller.Submit]
func submitDoneMsg(err error) Msg {
	return Msg{kind: MsgSubmitDone, data: err}
}

// copyDoneMsg reports the return value of [controller.Controller.Copy]
func copyDoneMsg(err error) Msg {
	return Msg{kind: MsgCopyDone, data: err}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}

func (m Msg) err() error {
	if err, ok := m.data.(error); ok {
		return err
	}
	return nil
}
