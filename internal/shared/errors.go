package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input and classification errors
	ErrEmptyInput      = fmt.Errorf("empty input")
	ErrUnrecognizedURL = fmt.Errorf("unrecognized URL")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Backend errors
	ErrBackend               = fmt.Errorf("backend error")
	ErrEmptyConversionResult = fmt.Errorf("empty conversion result")
	ErrNetwork               = fmt.Errorf("network error")
	ErrRateLimited           = fmt.Errorf("rate limit exceeded")
	ErrServiceUnavailable    = fmt.Errorf("service unavailable")

	// Controller errors
	ErrBusy          = fmt.Errorf("conversion already in progress")
	ErrNothingToCopy = fmt.Errorf("no converted URL to copy")
	ErrClipboard     = fmt.Errorf("clipboard write failed")
)
