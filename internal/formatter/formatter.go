// package formatter renders conversion results for the command line (plain text, JSON, Markdown)
package formatter

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/desertthunder/trackx/internal/models"
	"github.com/desertthunder/trackx/internal/shared"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format names accepted by [Lookup].
const (
	FormatNameText     = "text"
	FormatNameJSON     = "json"
	FormatNameMarkdown = "markdown"
)

// Formats lists every supported output format.
var Formats = []string{FormatNameText, FormatNameJSON, FormatNameMarkdown}

// Func renders a single result.
type Func func(*models.ConversionResult) ([]byte, error)

// Lookup returns the formatter registered for name. An empty name selects plain text.
func Lookup(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatNameText:
		return FormatText, nil
	case FormatNameJSON:
		return FormatJSON, nil
	case FormatNameMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q (expected one of %s)", shared.ErrInvalidFlag, name, strings.Join(Formats, ", "))
	}
}

// Render formats result with the formatter registered for name.
func Render(name string, result *models.ConversionResult) ([]byte, error) {
	format, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return format(result)
}

// FormatText writes the converted URL on the first line followed by optional match details.
//
// Failures render as a single "Error: ..." line.
func FormatText(result *models.ConversionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nothing to format")
	}

	var buf bytes.Buffer
	if !result.OK() {
		buf.WriteString(fmt.Sprintf("Error: %s\n", result.ErrorMessage))
		return buf.Bytes(), nil
	}

	buf.WriteString(result.ConvertedURL + "\n")

	if result.Direction != "" {
		buf.WriteString(fmt.Sprintf("Direction: %s -> %s\n", result.Direction.Source(), result.Direction.Target()))
	}
	if result.Confidence > 0 {
		buf.WriteString(fmt.Sprintf("Confidence: %s\n", FormatConfidence(result.Confidence)))
	}
	if t := result.Track; t != nil {
		if t.Title != "" {
			buf.WriteString(fmt.Sprintf("Track: %s\n", trackLine(t)))
		}
		if t.Album != "" {
			buf.WriteString(fmt.Sprintf("Album: %s\n", t.Album))
		}
		if t.DurationMS > 0 {
			buf.WriteString(fmt.Sprintf("Duration: %s\n", FormatDuration(t.DurationMS)))
		}
	}

	return buf.Bytes(), nil
}

// FormatJSON encodes the result with two-space indentation and a trailing newline.
func FormatJSON(result *models.ConversionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nothing to format")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return append(data, '\n'), nil
}

// FormatMarkdown renders the result as a heading, a link, and a details list.
func FormatMarkdown(result *models.ConversionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nothing to format")
	}

	var buf bytes.Buffer
	if !result.OK() {
		buf.WriteString("# Conversion failed\n\n")
		buf.WriteString(fmt.Sprintf("> %s\n", result.ErrorMessage))
		return buf.Bytes(), nil
	}

	title := "Converted track"
	if result.Track != nil && result.Track.Title != "" {
		title = trackLine(result.Track)
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	label := "Open"
	if result.Direction != "" {
		label = "Open in " + result.Direction.Target()
	}
	buf.WriteString(fmt.Sprintf("[%s](%s)\n", label, result.ConvertedURL))

	var details []string
	if result.Confidence > 0 {
		details = append(details, fmt.Sprintf("- **Confidence**: %s", FormatConfidence(result.Confidence)))
	}
	if t := result.Track; t != nil {
		if t.Album != "" {
			details = append(details, fmt.Sprintf("- **Album**: %s", t.Album))
		}
		if t.DurationMS > 0 {
			details = append(details, fmt.Sprintf("- **Duration**: %s", FormatDuration(t.DurationMS)))
		}
	}
	if len(details) > 0 {
		buf.WriteString("\n" + strings.Join(details, "\n") + "\n")
	}

	return buf.Bytes(), nil
}

// FormatDuration converts milliseconds to M:SS, or H:MM:SS for an hour or more.
func FormatDuration(ms int) string {
	if ms <= 0 {
		return "0:00"
	}
	total := ms / 1000
	hours, minutes, seconds := total/3600, (total%3600)/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatConfidence renders a 0..1 match score as a whole percentage.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

func trackLine(t *models.TrackInfo) string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}
