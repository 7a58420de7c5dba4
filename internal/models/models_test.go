package models

import "testing"

func TestDirection(t *testing.T) {
	tc := []struct {
		name       string
		dir        Direction
		endpoint   string
		requestKey string
		resultKey  string
		target     string
	}{
		{
			name:       "spotify to youtube",
			dir:        SpotifyToYouTube,
			endpoint:   "/convert/spotify-to-youtube",
			requestKey: "spotify_url",
			resultKey:  "youtube_music_url",
			target:     "YouTube Music",
		},
		{
			name:       "youtube to spotify",
			dir:        YouTubeToSpotify,
			endpoint:   "/convert/youtube-to-spotify",
			requestKey: "youtube_url",
			resultKey:  "spotify_url",
			target:     "Spotify",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dir.Endpoint(); got != tt.endpoint {
				t.Errorf("Endpoint() = %v, want %v", got, tt.endpoint)
			}
			if got := tt.dir.RequestKey(); got != tt.requestKey {
				t.Errorf("RequestKey() = %v, want %v", got, tt.requestKey)
			}
			if got := tt.dir.ResultKey(); got != tt.resultKey {
				t.Errorf("ResultKey() = %v, want %v", got, tt.resultKey)
			}
			if got := tt.dir.Target(); got != tt.target {
				t.Errorf("Target() = %v, want %v", got, tt.target)
			}
			if !tt.dir.Valid() {
				t.Errorf("expected %s to be valid", tt.dir)
			}
		})
	}

	if Direction("sideways").Valid() {
		t.Error("unknown direction should not be valid")
	}
}

func TestConversionResult(t *testing.T) {
	t.Run("success carries only a URL", func(t *testing.T) {
		r := NewConversionSuccess(SpotifyToYouTube, "https://music.youtube.com/watch?v=abc")
		if !r.OK() {
			t.Error("expected success result to be OK")
		}
		if r.ErrorMessage != "" {
			t.Errorf("expected empty error message, got %s", r.ErrorMessage)
		}
	})

	t.Run("failure carries only a message", func(t *testing.T) {
		r := NewConversionFailure(YouTubeToSpotify, "bad track")
		if r.OK() {
			t.Error("expected failure result not to be OK")
		}
		if r.ConvertedURL != "" {
			t.Errorf("expected empty URL, got %s", r.ConvertedURL)
		}
	})
}

func TestUIState(t *testing.T) {
	if StateBusy.Ready() {
		t.Error("busy state must not accept submissions")
	}
	for _, s := range []UIState{StateIdle, StateResult, StateError} {
		if !s.Ready() {
			t.Errorf("%s should accept submissions", s)
		}
	}
	if StateError.String() != "error" {
		t.Errorf("expected 'error', got %s", StateError.String())
	}
}
