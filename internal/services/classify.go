package services

import (
	"fmt"
	"strings"

	"github.com/desertthunder/trackx/internal/models"
	"github.com/desertthunder/trackx/internal/shared"
)

// PatternTable maps case-insensitive URL substrings to a conversion direction.
//
// Spotify markers are checked before YouTube markers.
type PatternTable struct {
	Spotify []string
	YouTube []string
}

// DefaultPatterns returns the track-link markers accepted out of the box.
func DefaultPatterns() PatternTable {
	return PatternTable{
		Spotify: []string{"spotify.com/track/"},
		YouTube: []string{"youtube.com/watch", "music.youtube.com/watch"},
	}
}

// PatternsFromConfig builds a table from the [patterns] section, falling back to defaults for empty lists.
func PatternsFromConfig(c shared.PatternsConfig) PatternTable {
	p := DefaultPatterns()
	if len(c.Spotify) > 0 {
		p.Spotify = c.Spotify
	}
	if len(c.YouTube) > 0 {
		p.YouTube = c.YouTube
	}
	return p
}

// Classify trims raw and determines which direction it should be converted in.
//
// Returns the trimmed URL alongside the direction so the caller sends exactly what was matched.
func (p PatternTable) Classify(raw string) (models.Direction, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", shared.ErrEmptyInput
	}

	lower := strings.ToLower(trimmed)
	switch {
	case containsAny(lower, p.Spotify):
		return models.SpotifyToYouTube, trimmed, nil
	case containsAny(lower, p.YouTube):
		return models.YouTubeToSpotify, trimmed, nil
	default:
		return "", "", fmt.Errorf("%w: %s", shared.ErrUnrecognizedURL, trimmed)
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m == "" {
			continue
		}
		if strings.Contains(s, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
