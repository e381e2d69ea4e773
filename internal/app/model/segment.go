package model

import "fmt"

// Segment is one timed span of transcribed speech.
type Segment struct {
	ID           string   `json:"id,omitempty"`
	StartMs      int64    `json:"start_ms"`
	EndMs        int64    `json:"end_ms"`
	Text         string   `json:"text"`
	SpeakerLabel *string  `json:"speaker_label,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// FormatOffset renders milliseconds as mm:ss.
func FormatOffset(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
