package lyrics

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestFormatLines_Plain(t *testing.T) {
	lines := []Line{{Text: "Line 1"}, {Text: "Line 2"}}

	got, err := FormatLines(lines, FormatPlain, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Content != "Line 1\nLine 2" {
		t.Errorf("content = %q, want %q", got.Content, "Line 1\nLine 2")
	}
}

func TestFormatLines_PlainIgnoresTimestamps(t *testing.T) {
	lines := []Line{
		{Text: "Line 1", StartTimeMs: 0, Timed: true},
		{Text: "Line 2", StartTimeMs: 1000, Timed: true},
	}

	got, err := FormatLines(lines, FormatPlain, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Content != "Line 1\nLine 2" {
		t.Errorf("content = %q, want plain text without timestamps", got.Content)
	}
}

func TestFormatLines_LRC(t *testing.T) {
	lines := []Line{
		{Text: "Line 1", StartTimeMs: 0, Timed: true},
		{Text: "Line 2", StartTimeMs: 1000, Timed: true},
		{Text: "Line 3", StartTimeMs: 61230, Timed: true},
	}

	got, err := FormatLines(lines, FormatLRC, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"[00:00.00]Line 1", "[00:01.00]Line 2", "[01:01.23]Line 3"} {
		if !strings.Contains(got.Content, want) {
			t.Errorf("content %q missing %q", got.Content, want)
		}
	}
}

func TestFormatLines_LRCRequiresTimedLines(t *testing.T) {
	lines := []Line{{Text: "Line 1"}, {Text: "Line 2"}}

	_, err := FormatLines(lines, FormatLRC, nil)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFormatLines_JSON(t *testing.T) {
	ms := int64(1500)
	lines := []Line{{Text: "Line 1", StartTimeMs: ms, Timed: true}}

	got, err := FormatLines(lines, FormatJSON, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded []struct {
		Text        string `json:"text"`
		StartTimeMs *int64 `json:"startTimeMs"`
	}
	if err := json.Unmarshal([]byte(got.Content), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Text != "Line 1" || decoded[0].StartTimeMs == nil || *decoded[0].StartTimeMs != ms {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestFormatLines_UnknownFormat(t *testing.T) {
	_, err := FormatLines([]Line{{Text: "x"}}, Format("xml"), nil)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFormatLines_CarriesMetadata(t *testing.T) {
	md := &TrackMetadata{ID: 7, TrackName: "Test Song"}
	got, err := FormatLines([]Line{{Text: "x"}}, FormatPlain, md)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Metadata == nil || got.Metadata.ID != 7 {
		t.Errorf("metadata not carried: %+v", got.Metadata)
	}
}
