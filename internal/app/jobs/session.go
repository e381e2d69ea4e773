package jobs

import (
	"context"

	"s2x/internal/app/model"
)

// Phase is the orchestration state of a session, distinct from the job status
// the service reports.
type Phase string

const (
	PhasePolling   Phase = "polling"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
	PhaseAbandoned Phase = "abandoned"
	PhaseCancelled Phase = "cancelled"
)

// Settled reports whether the session's poll loop has finished.
func (p Phase) Settled() bool {
	return p != PhasePolling
}

// Snapshot is an immutable view of a session.
type Snapshot struct {
	SessionID           uint64                  `json:"session_id"`
	Phase               Phase                   `json:"phase"`
	AudioURL            string                  `json:"audio_url"`
	Job                 *model.TranscriptionJob `json:"job,omitempty"`
	Segments            []model.Segment         `json:"segments,omitempty"`
	Polls               int                     `json:"polls"`
	ConsecutiveFailures int                     `json:"consecutive_failures"`
	LastError           string                  `json:"last_error,omitempty"`
	HistoryRecorded     bool                    `json:"history_recorded"`
}

// session owns one job from creation to a terminal or abandoned state.
// Mutable fields are guarded by Orchestrator.mu.
type session struct {
	id       uint64
	jobID    string
	audioURL string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	phase           Phase
	job             model.TranscriptionJob
	segments        []model.Segment
	polls           int
	failures        int
	lastErr         string
	historyRecorded bool
	err             error
}

func (s *session) snapshot() Snapshot {
	job := s.job
	job.Artifacts = s.job.Artifacts.Clone()

	var segs []model.Segment
	if s.segments != nil {
		segs = make([]model.Segment, len(s.segments))
		copy(segs, s.segments)
	}

	return Snapshot{
		SessionID:           s.id,
		Phase:               s.phase,
		AudioURL:            s.audioURL,
		Job:                 &job,
		Segments:            segs,
		Polls:               s.polls,
		ConsecutiveFailures: s.failures,
		LastError:           s.lastErr,
		HistoryRecorded:     s.historyRecorded,
	}
}
