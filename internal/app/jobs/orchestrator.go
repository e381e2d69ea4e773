package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
	"s2x/internal/app/metrics"
	"s2x/internal/app/model"
	"s2x/internal/app/repository"
)

// Remote is the subset of the service client the orchestrator drives.
type Remote interface {
	SegmentSource
	CreateAudio(ctx context.Context, req model.AudioCreate) (*model.Audio, error)
	CreateTranscription(ctx context.Context, req model.TranscriptionCreate) (*model.TranscriptionJob, error)
	GetTranscription(ctx context.Context, id string) (*model.TranscriptionJob, error)
	CreateShare(ctx context.Context, req model.ShareCreate) (*model.Share, error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithPolicy(p PollPolicy) Option {
	return func(o *Orchestrator) { o.policy = p.normalized() }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logging.OrNop(logger) }
}

func WithMetrics(m *metrics.Collectors) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithUpdateHook registers fn to receive a snapshot after every state change
// of the active session. fn runs on the poll goroutine and must not block.
func WithUpdateHook(fn func(Snapshot)) Option {
	return func(o *Orchestrator) { o.onUpdate = fn }
}

// Orchestrator runs at most one transcription session at a time.
//
// A new Submit cancels the previous session and waits for its poll goroutine
// to exit before issuing any request. Each session polls on a single
// goroutine, scheduling the next tick only after the current request
// returns, so poll responses are applied in issue order.
type Orchestrator struct {
	remote    Remote
	assembler *Assembler
	history   repository.HistoryStore
	policy    PollPolicy
	logger    *zap.Logger
	metrics   *metrics.Collectors
	onUpdate  func(Snapshot)

	submitMu sync.Mutex

	mu     sync.Mutex
	seq    uint64
	active *session
	closed bool
}

// NewOrchestrator creates an orchestrator; history may be nil.
func NewOrchestrator(remote Remote, history repository.HistoryStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		remote:  remote,
		history: history,
		policy:  DefaultPollPolicy(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.assembler = NewAssembler(remote, history, o.policy.SegmentLimit, o.logger, o.metrics)
	return o
}

// Submit registers the audio reference, creates the job and starts polling.
// The returned snapshot carries the job exactly as the create call returned
// it. On error no session is retained.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (Snapshot, error) {
	if err := req.Validate(); err != nil {
		return Snapshot{}, err
	}

	o.submitMu.Lock()
	defer o.submitMu.Unlock()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return Snapshot{}, apperrors.ErrClosed
	}
	prev := o.active
	o.active = nil
	o.mu.Unlock()
	o.stop(prev)

	job, err := o.create(ctx, req)
	o.metrics.Submission(err)
	if err != nil {
		return Snapshot{}, err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return Snapshot{}, apperrors.ErrClosed
	}
	o.seq++
	sctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:       o.seq,
		jobID:    job.ID,
		audioURL: req.AudioURL,
		ctx:      sctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		phase:    PhasePolling,
		job:      job.WithResultInvariant(),
	}
	o.active = s
	snap := s.snapshot()
	o.mu.Unlock()

	o.logger.Info("transcription submitted",
		zap.Uint64("session", s.id),
		zap.String("job_id", s.jobID),
		zap.String("audio_url", s.audioURL))
	o.notify(snap)

	go o.poll(s)
	return snap, nil
}

func (o *Orchestrator) create(ctx context.Context, req SubmitRequest) (*model.TranscriptionJob, error) {
	audio, err := o.remote.CreateAudio(ctx, model.AudioCreate{ProjectID: req.ProjectID, S3URI: req.AudioURL})
	if err != nil {
		return nil, fmt.Errorf("register audio: %w", err)
	}
	if audio.ID == "" {
		return nil, apperrors.Wrap(apperrors.ErrResponseInvalid, "register audio: no id returned")
	}

	job, err := o.remote.CreateTranscription(ctx, req.transcriptionCreate(audio.ID))
	if err != nil {
		return nil, fmt.Errorf("create transcription: %w", err)
	}
	if job.ID == "" {
		return nil, apperrors.Wrap(apperrors.ErrResponseInvalid, "create transcription: no id returned")
	}
	return job, nil
}

func (o *Orchestrator) poll(s *session) {
	defer close(s.done)

	timer := time.NewTimer(o.policy.Interval)
	defer timer.Stop()

	failures := 0
	for {
		select {
		case <-s.ctx.Done():
			o.settle(s, PhaseCancelled, s.ctx.Err())
			return
		case <-timer.C:
		}

		start := time.Now()
		job, err := o.remote.GetTranscription(s.ctx, s.jobID)
		o.metrics.Poll(time.Since(start).Seconds(), err)

		if s.ctx.Err() != nil {
			o.settle(s, PhaseCancelled, s.ctx.Err())
			return
		}
		if err == nil && job.ID != s.jobID {
			err = apperrors.Wrapf(apperrors.ErrResponseInvalid, "poll returned job %q, want %q", job.ID, s.jobID)
		}

		if err != nil {
			failures++
			o.logger.Warn("poll failed",
				zap.String("job_id", s.jobID),
				zap.Int("attempt", failures),
				zap.Error(err))

			if o.policy.exhausted(failures) {
				o.metrics.Abandoned()
				o.logger.Error("polling abandoned",
					zap.String("job_id", s.jobID),
					zap.Int("consecutive_failures", failures))
				o.update(s, func() {
					s.polls++
					s.failures = failures
					s.lastErr = err.Error()
				})
				o.settle(s, PhaseAbandoned, apperrors.Wrapf(apperrors.ErrPollAbandoned, "job %s", s.jobID))
				return
			}

			if !o.update(s, func() {
				s.polls++
				s.failures = failures
				s.lastErr = err.Error()
			}) {
				return
			}
			timer.Reset(o.policy.Delay(failures))
			continue
		}

		failures = 0
		current := job.WithResultInvariant()
		if !o.update(s, func() {
			s.polls++
			s.failures = 0
			s.lastErr = ""
			s.job = current
		}) {
			return
		}

		if !current.Status.IsTerminal() {
			timer.Reset(o.policy.Interval)
			continue
		}

		o.metrics.Terminal(string(current.Status))
		o.logger.Info("transcription finished",
			zap.String("job_id", s.jobID),
			zap.String("status", string(current.Status)))

		if current.Status == model.JobStatusFailed {
			o.settle(s, PhaseFailed, nil)
			return
		}

		result := o.assembler.Assemble(s.ctx, current, s.audioURL)
		o.update(s, func() {
			s.segments = result.Segments
			s.historyRecorded = o.history != nil && result.HistoryErr == nil
			switch {
			case result.HistoryErr != nil:
				s.lastErr = result.HistoryErr.Error()
			case result.SegmentErr != nil:
				s.lastErr = result.SegmentErr.Error()
			}
		})
		o.settle(s, PhaseSucceeded, nil)
		return
	}
}

// update applies fn to s if s is still the active session and not cancelled,
// then notifies observers. It reports whether fn was applied.
func (o *Orchestrator) update(s *session, fn func()) bool {
	o.mu.Lock()
	if o.active != s || s.ctx.Err() != nil {
		o.mu.Unlock()
		return false
	}
	fn()
	snap := s.snapshot()
	o.mu.Unlock()

	o.notify(snap)
	return true
}

// settle records the final phase of s. A superseded session is settled
// silently.
func (o *Orchestrator) settle(s *session, phase Phase, err error) {
	o.mu.Lock()
	s.phase = phase
	s.err = err
	active := o.active == s
	snap := s.snapshot()
	o.mu.Unlock()

	if active {
		o.notify(snap)
	}
}

func (o *Orchestrator) notify(snap Snapshot) {
	if o.onUpdate != nil {
		o.onUpdate(snap)
	}
}

// stop cancels s and blocks until its poll goroutine has exited.
func (o *Orchestrator) stop(s *session) {
	if s == nil {
		return
	}
	o.mu.Lock()
	s.cancel()
	o.mu.Unlock()
	<-s.done
}

// Current returns the active session, if any.
func (o *Orchestrator) Current() (Snapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active == nil {
		return Snapshot{}, false
	}
	return o.active.snapshot(), true
}

// Wait blocks until the active session settles or ctx is done. The error is
// non-nil when the session was abandoned or cancelled; a failed job is
// reported through the snapshot phase.
func (o *Orchestrator) Wait(ctx context.Context) (Snapshot, error) {
	o.mu.Lock()
	s := o.active
	o.mu.Unlock()
	if s == nil {
		return Snapshot{}, apperrors.ErrNoActiveJob
	}

	select {
	case <-s.done:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return s.snapshot(), s.err
}

// Cancel stops polling the active session. The session stays current with
// phase cancelled. Cancelling a settled session is a no-op.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	s := o.active
	o.mu.Unlock()
	if s == nil {
		return apperrors.ErrNoActiveJob
	}
	o.stop(s)
	return nil
}

// CreateShare registers a public share link for the active job.
func (o *Orchestrator) CreateShare(ctx context.Context, createdBy string) (*model.Share, error) {
	o.mu.Lock()
	var jobID string
	if o.active != nil {
		jobID = o.active.jobID
	}
	o.mu.Unlock()
	if jobID == "" {
		return nil, apperrors.ErrNoActiveJob
	}

	req, err := NewShareRequest(jobID, createdBy)
	if err != nil {
		return nil, err
	}
	share, err := o.remote.CreateShare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return share, nil
}

// Close cancels the active session and rejects further submissions.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	s := o.active
	o.mu.Unlock()

	o.stop(s)
	return nil
}

// IsCancelled reports whether err came from a cancelled session.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
