package metrics

import (
	"context"
	"net/http"
	"time"

	"ordered-sync/core/orderedsync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordered_sync"

// Event kinds used as the "kind" label.
const (
	KindAdd    = "add"
	KindRemove = "remove"
)

// Metrics holds the collectors for reconciliation runs.
type Metrics struct {
	// Events counts applied add/remove events. Labels: job, kind.
	Events *prometheus.CounterVec

	// Runs counts finished runs. Labels: job, mode (plan, apply), status (success, error).
	Runs *prometheus.CounterVec

	// RunDuration observes run wall time. Labels: job, mode.
	RunDuration *prometheus.HistogramVec
}

// New registers a fresh set of collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Add and remove events applied to targets",
		}, []string{"job", "kind"}),
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished reconciliation runs by mode and status",
		}, []string{"job", "mode", "status"}),
		RunDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of reconciliation runs",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"job", "mode"}),
	}
}

// Default is registered with the global Prometheus registry.
var Default = New(prometheus.DefaultRegisterer)

// ObserveRun records the outcome of one run started at started.
func (m *Metrics) ObserveRun(job, mode string, started time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.Runs.WithLabelValues(job, mode, status).Inc()
	m.RunDuration.WithLabelValues(job, mode).Observe(time.Since(started).Seconds())
}

// Handler serves the global registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

type countingSink[T any] struct {
	next    orderedsync.Sink[T]
	added   prometheus.Counter
	removed prometheus.Counter
}

// CountingSink wraps next and counts every event it accepts.
// Failed events are not counted.
func CountingSink[T any](m *Metrics, job string, next orderedsync.Sink[T]) orderedsync.Sink[T] {
	return &countingSink[T]{
		next:    next,
		added:   m.Events.WithLabelValues(job, KindAdd),
		removed: m.Events.WithLabelValues(job, KindRemove),
	}
}

func (s *countingSink[T]) Add(ctx context.Context, elem T) error {
	if err := s.next.Add(ctx, elem); err != nil {
		return err
	}
	s.added.Inc()
	return nil
}

func (s *countingSink[T]) Remove(ctx context.Context, elem T) error {
	if err := s.next.Remove(ctx, elem); err != nil {
		return err
	}
	s.removed.Inc()
	return nil
}
