package lyrics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatLines renders a line sequence in the requested format. Plain output
// joins line texts with newlines and ignores any timestamps. LRC output
// requires every line to be timed and renders "[MM:SS.CC]text". JSON output
// is a pretty-printed serialization of the sequence with stable field order.
func FormatLines(lines []Line, format Format, md *TrackMetadata) (FormattedLyrics, error) {
	var content string

	switch format {
	case FormatPlain:
		texts := make([]string, len(lines))
		for i, line := range lines {
			texts[i] = line.Text
		}
		content = strings.Join(texts, "\n")

	case FormatLRC:
		rendered := make([]string, len(lines))
		for i, line := range lines {
			if !line.Timed {
				return FormattedLyrics{}, &ValidationError{Field: "lines", Reason: "lrc format requires synced lyrics"}
			}
			rendered[i] = lrcTimestamp(line.StartTimeMs) + line.Text
		}
		content = strings.Join(rendered, "\n")

	case FormatJSON:
		out := make([]jsonLine, len(lines))
		for i, line := range lines {
			out[i] = jsonLine{Text: line.Text}
			if line.Timed {
				ms := line.StartTimeMs
				out[i].StartTimeMs = &ms
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return FormattedLyrics{}, fmt.Errorf("failed to encode lyrics: %w", err)
		}
		content = string(data)

	default:
		return FormattedLyrics{}, &ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", format)}
	}

	return FormattedLyrics{Content: content, Format: format, Metadata: md}, nil
}

type jsonLine struct {
	Text        string `json:"text"`
	StartTimeMs *int64 `json:"startTimeMs,omitempty"`
}

// lrcTimestamp renders a millisecond offset as "[MM:SS.CC]".
func lrcTimestamp(ms int64) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, centis)
}
