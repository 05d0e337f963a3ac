package model

import (
	"fmt"
	"strings"
)

// Segment is one timed span of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptResult is everything the speech model returns for one audio
// file. Produced once per job by the transcriber, consumed by the formatter.
type TranscriptResult struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Model    string    `json:"model"`
}

// Timestamped renders segments as "[MM:SS - MM:SS] text" lines, one per
// segment. Hours are added once the audio passes the one-hour mark.
func (r *TranscriptResult) Timestamped() string {
	lines := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s",
			FormatClock(seg.Start), FormatClock(seg.End), strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n")
}

// FormatClock formats seconds as MM:SS, or HH:MM:SS past one hour.
func FormatClock(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
