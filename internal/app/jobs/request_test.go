package jobs

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "s2x/internal/app/errors"
)

func TestSubmitRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SubmitRequest)
		target error
	}{
		{"valid", func(r *SubmitRequest) {}, nil},
		{"missing audio", func(r *SubmitRequest) { r.AudioURL = "  " }, apperrors.ErrInvalidRequest},
		{"no project", func(r *SubmitRequest) { r.ProjectID = "" }, apperrors.ErrNotReady},
		{"temperature low", func(r *SubmitRequest) { r.Temperature = -0.1 }, apperrors.ErrInvalidRequest},
		{"temperature high", func(r *SubmitRequest) { r.Temperature = 1.01 }, apperrors.ErrInvalidRequest},
		{"temperature NaN", func(r *SubmitRequest) { r.Temperature = math.NaN() }, apperrors.ErrInvalidRequest},
		{"temperature edge", func(r *SubmitRequest) { r.Temperature = 1 }, nil},
		{"beam zero", func(r *SubmitRequest) { r.BeamSize = 0 }, apperrors.ErrInvalidRequest},
		{"beam edge", func(r *SubmitRequest) { r.BeamSize = 10 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(&req)
			err := req.Validate()
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestTranscriptionCreate_OptionalFieldsAreNull(t *testing.T) {
	req := validRequest()
	body := req.transcriptionCreate("audio-1")
	assert.Equal(t, "batch", body.Mode)
	assert.Nil(t, body.LanguageHint)
	assert.Nil(t, body.ModelName)

	req.LanguageHint = "es"
	req.ModelName = "large-v3"
	body = req.transcriptionCreate("audio-1")
	assert.Equal(t, "es", *body.LanguageHint)
	assert.Equal(t, "large-v3", *body.ModelName)
}
