package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"s2x/internal/app/jobs"
	"s2x/internal/app/model"
)

func TestCreateTranscriptionRequest_ToSubmitRequest(t *testing.T) {
	base := jobs.SubmitRequest{ProjectID: "project-1", BeamSize: jobs.DefaultBeamSize}

	got := CreateTranscriptionRequest{AudioURL: "http://a/x.mp3"}.ToSubmitRequest(base)
	assert.Equal(t, jobs.SubmitRequest{AudioURL: "http://a/x.mp3", ProjectID: "project-1", BeamSize: 5}, got)

	temp, beam := 0.4, 2
	got = CreateTranscriptionRequest{
		AudioURL:     "http://a/x.mp3",
		ProjectID:    "other",
		LanguageHint: "es",
		Temperature:  &temp,
		BeamSize:     &beam,
	}.ToSubmitRequest(base)
	assert.Equal(t, "other", got.ProjectID)
	assert.Equal(t, "es", got.LanguageHint)
	assert.Equal(t, 0.4, got.Temperature)
	assert.Equal(t, 2, got.BeamSize)
}

func TestNewTranscriptionResponse(t *testing.T) {
	text := "hola"
	resp := NewTranscriptionResponse(jobs.Snapshot{Job: &model.TranscriptionJob{
		ID:       "job-1",
		Status:   model.JobStatusSucceeded,
		TextFull: &text,
	}})
	assert.Equal(t, "hola", resp.Transcript)

	assert.Empty(t, NewTranscriptionResponse(jobs.Snapshot{}).Transcript)
}
