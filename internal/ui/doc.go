// Package ui implements an interactive terminal interface for the conversion controller using bubbletea's
// Elm architecture.
//
// The screen has a single URL field and a Convert button:
//  1. Type or paste a Spotify or YouTube Music track link
//  2. Press enter (from the field or the focused button) to convert
//  3. A spinner runs while the request is in flight and the button is disabled
//  4. The converted link is shown with match details, or the error in red
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// The controller renders through [Ports], which queue messages on a channel that the model drains between updates.
//
// Keyboard: tab switches focus, ctrl+y copies the result, ctrl+o opens it in a browser, esc or ctrl+c quits.
package ui
