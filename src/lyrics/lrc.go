package lyrics

import (
	"regexp"
	"strconv"
	"strings"
)

// lrclib serves synced bodies as LRC text: one "[mm:ss.cc] text" line each.
var lrcLineRe = regexp.MustCompile(`^\[(\d+):(\d{2})\.(\d{2})\]\s?(.*)$`)

// ParseSyncedBody parses an LRC-formatted lyrics body into timed lines.
// Lines without a parseable timestamp are skipped.
func ParseSyncedBody(body string) []Line {
	var lines []Line
	for _, raw := range strings.Split(body, "\n") {
		m := lrcLineRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		minutes, _ := strconv.ParseInt(m[1], 10, 64)
		seconds, _ := strconv.ParseInt(m[2], 10, 64)
		centis, _ := strconv.ParseInt(m[3], 10, 64)
		lines = append(lines, Line{
			Text:        m[4],
			StartTimeMs: minutes*60000 + seconds*1000 + centis*10,
			Timed:       true,
		})
	}
	return lines
}

// ParsePlainBody splits a plain lyrics body into untimed lines.
func ParsePlainBody(body string) []Line {
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return nil
	}
	var lines []Line
	for _, text := range strings.Split(body, "\n") {
		lines = append(lines, Line{Text: text})
	}
	return lines
}
