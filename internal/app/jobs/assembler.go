package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"s2x/internal/app/logging"
	"s2x/internal/app/metrics"
	"s2x/internal/app/model"
	"s2x/internal/app/repository"
)

// SegmentSource lists the timed segments of a finished job.
type SegmentSource interface {
	ListSegments(ctx context.Context, id string, limit, offset int) ([]model.Segment, error)
}

// Assembly is the outcome of folding a succeeded job into the ledger.
type Assembly struct {
	Segments   []model.Segment
	Entry      model.HistoryEntry
	SegmentErr error
	HistoryErr error
}

// Assembler fetches segments for a succeeded job and records it in history.
// Neither step blocks the other: a failed segment fetch still records history.
type Assembler struct {
	segments SegmentSource
	history  repository.HistoryStore
	limit    int
	logger   *zap.Logger
	metrics  *metrics.Collectors
	now      func() time.Time
}

// NewAssembler creates an assembler; history may be nil to skip recording.
func NewAssembler(segments SegmentSource, history repository.HistoryStore, limit int, logger *zap.Logger, m *metrics.Collectors) *Assembler {
	if limit <= 0 {
		limit = DefaultPollPolicy().SegmentLimit
	}
	return &Assembler{
		segments: segments,
		history:  history,
		limit:    limit,
		logger:   logging.OrNop(logger),
		metrics:  m,
		now:      time.Now,
	}
}

// Assemble runs on success-terminal detection. The history write outlives
// cancellation of ctx so a superseded session still records its result.
func (a *Assembler) Assemble(ctx context.Context, job model.TranscriptionJob, audioURL string) Assembly {
	var out Assembly

	segs, err := a.segments.ListSegments(ctx, job.ID, a.limit, 0)
	if err != nil {
		a.logger.Warn("segment fetch failed", zap.String("job_id", job.ID), zap.Error(err))
		out.SegmentErr = err
		segs = []model.Segment{}
	}
	out.Segments = segs

	out.Entry = model.NewHistoryEntry(job, audioURL, a.now())
	if a.history == nil {
		return out
	}

	err = a.history.Insert(context.WithoutCancel(ctx), out.Entry)
	a.metrics.HistoryInsert(err)
	if err != nil {
		a.logger.Error("history insert failed", zap.String("job_id", job.ID), zap.Error(err))
		out.HistoryErr = err
		return out
	}
	a.logger.Debug("history recorded", zap.String("job_id", job.ID))
	return out
}
