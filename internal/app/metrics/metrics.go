package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "s2x"

// Collectors holds the client's prometheus instruments on a private registry.
// All methods are safe on a nil receiver, which records nothing.
type Collectors struct {
	registry *prometheus.Registry

	submissions    *prometheus.CounterVec
	polls          *prometheus.CounterVec
	terminal       *prometheus.CounterVec
	abandoned      prometheus.Counter
	historyInserts *prometheus.CounterVec
	manifestLoads  *prometheus.CounterVec
	pollLatency    prometheus.Histogram
}

// New creates and registers every collector.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Transcription submissions by result.",
		}, []string{"result"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_requests_total",
			Help:      "Job status polls by result.",
		}, []string{"result"}),
		terminal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_terminal_total",
			Help:      "Jobs that reached a terminal status.",
		}, []string{"status"}),
		abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_abandoned_total",
			Help:      "Sessions abandoned after too many consecutive poll failures.",
		}),
		historyInserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_inserts_total",
			Help:      "History ledger inserts by result.",
		}, []string{"result"}),
		manifestLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manifest_loads_total",
			Help:      "Library manifest loads by the kind of source that answered.",
		}, []string{"source"}),
		pollLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Latency of job status polls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(
		c.submissions,
		c.polls,
		c.terminal,
		c.abandoned,
		c.historyInserts,
		c.manifestLoads,
		c.pollLatency,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collectors) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collectors) Submission(err error) {
	if c == nil {
		return
	}
	c.submissions.WithLabelValues(result(err)).Inc()
}

func (c *Collectors) Poll(seconds float64, err error) {
	if c == nil {
		return
	}
	c.polls.WithLabelValues(result(err)).Inc()
	c.pollLatency.Observe(seconds)
}

func (c *Collectors) Terminal(status string) {
	if c == nil {
		return
	}
	c.terminal.WithLabelValues(status).Inc()
}

func (c *Collectors) Abandoned() {
	if c == nil {
		return
	}
	c.abandoned.Inc()
}

func (c *Collectors) HistoryInsert(err error) {
	if c == nil {
		return
	}
	c.historyInserts.WithLabelValues(result(err)).Inc()
}

func (c *Collectors) ManifestLoad(source string) {
	if c == nil {
		return
	}
	c.manifestLoads.WithLabelValues(source).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
