package model

// Share is a token-addressable public reference to a completed job.
type Share struct {
	ID              string     `json:"id,omitempty"`
	TranscriptionID string     `json:"transcription_id"`
	Token           string     `json:"token"`
	Kind            string     `json:"kind"`
	CanEdit         bool       `json:"can_edit"`
	ExpiresAt       *Timestamp `json:"expires_at,omitempty"`
	CreatedBy       *string    `json:"created_by,omitempty"`
	CreatedAt       Timestamp  `json:"created_at,omitempty"`
}

// ShareCreate is the body of POST /shares; nullable fields are always sent.
type ShareCreate struct {
	TranscriptionID string     `json:"transcription_id"`
	Token           string     `json:"token"`
	Kind            string     `json:"kind"`
	CanEdit         bool       `json:"can_edit"`
	ExpiresAt       *Timestamp `json:"expires_at"`
	CreatedBy       *string    `json:"created_by"`
}
