package models

import "fmt"

// Direction identifies a conversion between platforms.
type Direction string

const (
	SpotifyToYouTube Direction = "spotify-to-youtube"
	YouTubeToSpotify Direction = "youtube-to-spotify"
)

// Endpoint returns the backend path for the direction.
func (d Direction) Endpoint() string {
	return "/convert/" + string(d)
}

// RequestKey returns the JSON key the backend expects the source URL under.
func (d Direction) RequestKey() string {
	if d == YouTubeToSpotify {
		return "youtube_url"
	}
	return "spotify_url"
}

// ResultKey returns the JSON key the backend reports the converted URL under.
func (d Direction) ResultKey() string {
	if d == YouTubeToSpotify {
		return "spotify_url"
	}
	return "youtube_music_url"
}

func (d Direction) Source() string {
	if d == YouTubeToSpotify {
		return "YouTube Music"
	}
	return "Spotify"
}

func (d Direction) Target() string {
	if d == YouTubeToSpotify {
		return "Spotify"
	}
	return "YouTube Music"
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == SpotifyToYouTube || d == YouTubeToSpotify
}

// ConversionRequest is built fresh for every submission and discarded once the response is rendered.
//
// ID is only used to correlate log lines and is never sent to the backend.
type ConversionRequest struct {
	ID        string
	Direction Direction
	SourceURL string
}

// TrackInfo is the metadata the backend resolved for the source track.
type TrackInfo struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

// ConversionResult holds the outcome of one submission.
//
// Exactly one of ConvertedURL or ErrorMessage is populated.
type ConversionResult struct {
	Direction    Direction  `json:"direction,omitempty"`
	ConvertedURL string     `json:"converted_url,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
	Confidence   float64    `json:"match_confidence,omitempty"`
	Track        *TrackInfo `json:"track_info,omitempty"`
}

// NewConversionSuccess builds a result carrying a converted URL.
func NewConversionSuccess(d Direction, url string) *ConversionResult {
	return &ConversionResult{Direction: d, ConvertedURL: url}
}

// NewConversionFailure builds a result carrying only an error message.
func NewConversionFailure(d Direction, msg string) *ConversionResult {
	return &ConversionResult{Direction: d, ErrorMessage: msg}
}

// OK reports whether the result carries a converted URL.
func (r ConversionResult) OK() bool {
	return r.ConvertedURL != "" && r.ErrorMessage == ""
}

// UIState is the controller's single active state.
type UIState int

const (
	StateIdle UIState = iota
	StateBusy
	StateResult
	StateError
)

func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("UIState(%d)", int(s))
	}
}

// Ready reports whether a new submission may start from this state.
func (s UIState) Ready() bool {
	return s != StateBusy
}
