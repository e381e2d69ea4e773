package dto

import (
	"s2x/internal/app/jobs"
)

// CreateTranscriptionRequest is the body of POST /api/v1/transcriptions.
// Omitted temperature and beam size take the client defaults.
type CreateTranscriptionRequest struct {
	AudioURL     string   `json:"audio_url" binding:"required"`
	ProjectID    string   `json:"project_id,omitempty"`
	LanguageHint string   `json:"language_hint,omitempty"`
	ModelName    string   `json:"model_name,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty" binding:"omitempty,min=0,max=1"`
	BeamSize     *int     `json:"beam_size,omitempty" binding:"omitempty,min=1,max=10"`
}

// ToSubmitRequest applies the request on top of base.
func (r CreateTranscriptionRequest) ToSubmitRequest(base jobs.SubmitRequest) jobs.SubmitRequest {
	base.AudioURL = r.AudioURL
	if r.ProjectID != "" {
		base.ProjectID = r.ProjectID
	}
	base.LanguageHint = r.LanguageHint
	base.ModelName = r.ModelName
	if r.Temperature != nil {
		base.Temperature = *r.Temperature
	}
	if r.BeamSize != nil {
		base.BeamSize = *r.BeamSize
	}
	return base
}

// TranscriptionResponse wraps the current session.
type TranscriptionResponse struct {
	jobs.Snapshot
	Transcript string `json:"transcript,omitempty"`
}

// NewTranscriptionResponse renders a snapshot with its transcript text.
func NewTranscriptionResponse(snap jobs.Snapshot) TranscriptionResponse {
	resp := TranscriptionResponse{Snapshot: snap}
	if snap.Job != nil {
		resp.Transcript = snap.Job.Text()
	}
	return resp
}
