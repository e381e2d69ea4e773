package model

import "encoding/json"

// JobStatus is the status label reported by the transcription service.
// Only succeeded and failed are interpreted; anything else is non-terminal.
type JobStatus string

const (
	JobStatusCreated   JobStatus = "created"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal reports whether no further polling-driven change can occur.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// TranscriptionJob is one remote transcription request and its evolving result
type TranscriptionJob struct {
	ID               string    `json:"id"`
	AudioID          string    `json:"audio_id,omitempty"`
	Status           JobStatus `json:"status"`
	Mode             string    `json:"mode,omitempty"`
	LanguageHint     *string   `json:"language_hint,omitempty"`
	ModelName        *string   `json:"model_name,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	BeamSize         *int      `json:"beam_size,omitempty"`
	LanguageDetected *string   `json:"language_detected,omitempty"`
	TextFull         *string   `json:"text_full,omitempty"`
	Confidence       *float64  `json:"confidence,omitempty"`
	Artifacts        Artifacts `json:"artifacts,omitempty"`
	CreatedAt        Timestamp `json:"created_at,omitempty"`
}

// Succeeded reports whether the job reached the success terminal state.
func (j *TranscriptionJob) Succeeded() bool {
	return j != nil && j.Status == JobStatusSucceeded
}

// WithResultInvariant returns a copy whose result fields (text, detected
// language, confidence, artifacts) are cleared unless the job succeeded.
func (j TranscriptionJob) WithResultInvariant() TranscriptionJob {
	if j.Status == JobStatusSucceeded {
		return j
	}
	j.LanguageDetected = nil
	j.TextFull = nil
	j.Confidence = nil
	j.Artifacts = nil
	return j
}

// Text returns the full transcribed text or "".
func (j *TranscriptionJob) Text() string {
	if j == nil || j.TextFull == nil {
		return ""
	}
	return *j.TextFull
}

// Language returns the detected language or "".
func (j *TranscriptionJob) Language() string {
	if j == nil || j.LanguageDetected == nil {
		return ""
	}
	return *j.LanguageDetected
}

// TranscriptionCreate is the body of POST /transcriptions.
// Optional fields are sent as explicit nulls, the way the service expects them.
type TranscriptionCreate struct {
	AudioID      string  `json:"audio_id"`
	Mode         string  `json:"mode"`
	LanguageHint *string `json:"language_hint"`
	ModelName    *string `json:"model_name"`
	Temperature  float64 `json:"temperature"`
	BeamSize     int     `json:"beam_size"`
}

// Artifacts maps an artifact kind (srt, vtt, ...) to its retrieval URL.
type Artifacts map[string]string

// UnmarshalJSON accepts null and silently drops non-string values.
func (a *Artifacts) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*a = nil
		return nil
	}
	out := make(Artifacts, len(raw))
	for kind, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			out[kind] = s
		}
	}
	*a = out
	return nil
}

// Clone returns an independent copy.
func (a Artifacts) Clone() Artifacts {
	if a == nil {
		return nil
	}
	out := make(Artifacts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
