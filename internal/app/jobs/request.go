package jobs

import (
	"strings"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/model"
)

// DefaultBeamSize is used by callers when the user gives none.
const DefaultBeamSize = 5

// SubmitRequest is everything needed to start a transcription.
type SubmitRequest struct {
	AudioURL     string
	ProjectID    string
	LanguageHint string // empty lets the service detect
	ModelName    string // empty selects the service default
	Temperature  float64
	BeamSize     int
}

// Validate checks the request before any remote call is made.
func (r SubmitRequest) Validate() error {
	if strings.TrimSpace(r.AudioURL) == "" {
		return apperrors.Invalid("audio_url", "is required")
	}
	if r.ProjectID == "" {
		return apperrors.Wrap(apperrors.ErrNotReady, "submit")
	}
	if !(r.Temperature >= 0 && r.Temperature <= 1) {
		return apperrors.OutOfRange("temperature", 0.0, 1.0)
	}
	if r.BeamSize < 1 || r.BeamSize > 10 {
		return apperrors.OutOfRange("beam_size", 1, 10)
	}
	return nil
}

func (r SubmitRequest) transcriptionCreate(audioID string) model.TranscriptionCreate {
	return model.TranscriptionCreate{
		AudioID:      audioID,
		Mode:         "batch",
		LanguageHint: optional(r.LanguageHint),
		ModelName:    optional(r.ModelName),
		Temperature:  r.Temperature,
		BeamSize:     r.BeamSize,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
