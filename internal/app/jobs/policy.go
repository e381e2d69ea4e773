package jobs

import (
	"time"

	"s2x/internal/config"
)

// PollPolicy controls the cadence and failure tolerance of a poll session.
type PollPolicy struct {
	Interval               time.Duration // delay between polls while healthy
	MaxConsecutiveFailures int           // 0 polls until cancelled
	MaxBackoff             time.Duration // ceiling for the failure backoff
	SegmentLimit           int           // page size of the segment fetch
}

// DefaultPollPolicy polls every 1.2s, backs off up to 30s and gives up after
// 25 failed polls in a row.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		Interval:               config.DefaultPollInterval,
		MaxConsecutiveFailures: config.DefaultMaxConsecutiveFailures,
		MaxBackoff:             config.DefaultMaxBackoff,
		SegmentLimit:           config.DefaultSegmentLimit,
	}
}

// PolicyFromConfig maps the client config onto a policy.
func PolicyFromConfig(cfg config.PollConfig) PollPolicy {
	return PollPolicy{
		Interval:               cfg.Interval,
		MaxConsecutiveFailures: cfg.MaxConsecutiveFailures,
		MaxBackoff:             cfg.MaxBackoff,
		SegmentLimit:           cfg.SegmentLimit,
	}.normalized()
}

func (p PollPolicy) normalized() PollPolicy {
	def := DefaultPollPolicy()
	if p.Interval <= 0 {
		p.Interval = def.Interval
	}
	if p.MaxConsecutiveFailures < 0 {
		p.MaxConsecutiveFailures = 0
	}
	if p.MaxBackoff < p.Interval {
		p.MaxBackoff = p.Interval
	}
	if p.SegmentLimit <= 0 {
		p.SegmentLimit = def.SegmentLimit
	}
	return p
}

// Delay returns the wait before the next poll after the given number of
// consecutive failures: Interval * 2^(failures-1), capped at MaxBackoff.
func (p PollPolicy) Delay(failures int) time.Duration {
	d := p.Interval
	for i := 1; i < failures && d < p.MaxBackoff; i++ {
		d *= 2
	}
	if failures > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	return d
}

// exhausted reports whether failures reached the abandon threshold.
func (p PollPolicy) exhausted(failures int) bool {
	return p.MaxConsecutiveFailures > 0 && failures >= p.MaxConsecutiveFailures
}
