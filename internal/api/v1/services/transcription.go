package services

import (
	"context"
	"errors"

	"s2x/internal/api/v1/dto"
	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/jobs"
	"s2x/internal/app/model"
)

// Orchestrator is the part of jobs.Orchestrator the API uses.
type Orchestrator interface {
	Submit(ctx context.Context, req jobs.SubmitRequest) (jobs.Snapshot, error)
	Current() (jobs.Snapshot, bool)
	Cancel() error
	CreateShare(ctx context.Context, createdBy string) (*model.Share, error)
}

// Session supplies request defaults and share links from the client state.
type Session interface {
	NewSubmitRequest(audioURL string) jobs.SubmitRequest
	EnsureIdentity(ctx context.Context, force bool) error
	UserID() string
	ShareLink(token string) string
}

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	orchestrator Orchestrator
	session      Session
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(orchestrator Orchestrator, session Session) TranscriptionService {
	return &TranscriptionServiceImpl{
		orchestrator: orchestrator,
		session:      session,
	}
}

// CreateTranscription submits a job, replacing any session in flight. A
// client that never bootstrapped retries the bootstrap once first.
func (s *TranscriptionServiceImpl) CreateTranscription(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error) {
	snap, err := s.orchestrator.Submit(ctx, req.ToSubmitRequest(s.session.NewSubmitRequest(req.AudioURL)))
	if errors.Is(err, apperrors.ErrNotReady) {
		if bootErr := s.session.EnsureIdentity(ctx, false); bootErr != nil {
			return nil, apperrors.Wrapf(err, "bootstrap: %v", bootErr)
		}
		snap, err = s.orchestrator.Submit(ctx, req.ToSubmitRequest(s.session.NewSubmitRequest(req.AudioURL)))
	}
	if err != nil {
		return nil, err
	}
	resp := dto.NewTranscriptionResponse(snap)
	return &resp, nil
}

// CurrentTranscription returns the active session.
func (s *TranscriptionServiceImpl) CurrentTranscription(_ context.Context) (*dto.TranscriptionResponse, error) {
	snap, ok := s.orchestrator.Current()
	if !ok {
		return nil, apperrors.ErrNoActiveJob
	}
	resp := dto.NewTranscriptionResponse(snap)
	return &resp, nil
}

// CancelTranscription stops polling the active session.
func (s *TranscriptionServiceImpl) CancelTranscription(_ context.Context) error {
	return s.orchestrator.Cancel()
}

// CreateShare publishes the active job and renders its link.
func (s *TranscriptionServiceImpl) CreateShare(ctx context.Context) (*dto.ShareResponse, error) {
	share, err := s.orchestrator.CreateShare(ctx, s.session.UserID())
	if err != nil {
		return nil, err
	}
	return &dto.ShareResponse{
		Share: share,
		Link:  s.session.ShareLink(share.Token),
	}, nil
}
