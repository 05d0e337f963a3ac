package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00"},
		{"under a minute", 42.7, "00:42"},
		{"minutes", 125, "02:05"},
		{"just under an hour", 3599, "59:59"},
		{"exactly an hour", 3600, "01:00:00"},
		{"long recording", 7384, "02:03:04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestTimestamped(t *testing.T) {
	r := &TranscriptResult{
		Segments: []Segment{
			{Start: 0, End: 4.5, Text: " Hello there. "},
			{Start: 4.5, End: 9, Text: "Second segment."},
		},
	}
	want := "[00:00 - 00:04] Hello there.\n[00:04 - 00:09] Second segment."
	assert.Equal(t, want, r.Timestamped())
}

func TestTimestampedEmpty(t *testing.T) {
	r := &TranscriptResult{}
	assert.Equal(t, "", r.Timestamped())
}
