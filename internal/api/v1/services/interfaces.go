package services

import (
	"context"

	"s2x/internal/api/v1/dto"
)

// TranscriptionService drives the single active transcription session.
type TranscriptionService interface {
	CreateTranscription(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error)
	CurrentTranscription(ctx context.Context) (*dto.TranscriptionResponse, error)
	CancelTranscription(ctx context.Context) error
	CreateShare(ctx context.Context) (*dto.ShareResponse, error)
}

// HistoryService exposes the local ledger.
type HistoryService interface {
	ListHistory(ctx context.Context) (*dto.HistoryResponse, error)
	ClearHistory(ctx context.Context) error
}

// LibraryService lists selectable audio samples.
type LibraryService interface {
	ListLibrary(ctx context.Context) (*dto.LibraryResponse, error)
}

// HealthService reports on the remote transcription service.
type HealthService interface {
	CheckHealth(ctx context.Context) (*dto.HealthResponse, error)
}
