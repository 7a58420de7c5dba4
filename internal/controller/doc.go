// Package controller implements the conversion request controller: a small state machine that binds a URL
// field and a submit trigger to the conversion backend and renders the outcome through injected ports.
//
// # States
//
//	Idle ──Submit──▶ Busy ──ok──▶ Result
//	                  │
//	                  └──err──▶ Error
//
// Submit is accepted from Idle, Result, and Error. A Submit while Busy is a no-op returning [shared.ErrBusy];
// no second request is issued. Classification failures go straight to Error without entering Busy.
//
// # Ports
//
// The controller never touches a terminal or window directly. Renderers implement [InputPort], [SubmitPort],
// [ResultPort], [ErrorPort], [BusyPort], and [Clipboard] and pass them in through [Ports]. The TUI
// (internal/ui) and the one-shot CLI (cmd) provide their own implementations.
//
// # Guaranteed Release
//
// The busy indicator is cleared by a deferred call on the completion path, so it is released even if a
// port panics while rendering the result.
package controller
