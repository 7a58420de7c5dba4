// Package models defines the transient value types that flow through a single conversion cycle.
//
//   - [Direction] : which platform-to-platform conversion is requested
//   - [ConversionRequest] : the classified URL about to be sent to the backend
//   - [ConversionResult] : either a converted URL or an error message, never both
//   - [TrackInfo] : optional track metadata reported by the backend alongside a match
//   - [UIState] : the controller's single active state (Idle, Busy, Result, Error)
//
// None of these values outlive a submission; there is no stored history.
package models
