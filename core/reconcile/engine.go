package reconcile

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"strings"

	"ordered-sync/core/metrics"
	"ordered-sync/core/orderedsync"
)

// JobOption customizes a job built by NewJob.
type JobOption func(*jobConfig)

type jobConfig struct {
	metrics *metrics.Metrics
}

// WithMetrics records applied events in m instead of metrics.Default.
func WithMetrics(m *metrics.Metrics) JobOption {
	return func(c *jobConfig) {
		c.metrics = m
	}
}

type job[T any, K cmp.Ordered] struct {
	adapter    Adapter[T, K]
	reconciler *orderedsync.Reconciler[T, K]
	metrics    *metrics.Metrics
}

// NewJob wraps adapter into a Job driven by the merge reconciler.
func NewJob[T any, K cmp.Ordered](adapter Adapter[T, K], opts ...JobOption) Job {
	cfg := jobConfig{metrics: metrics.Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &job[T, K]{
		adapter:    adapter,
		reconciler: orderedsync.New(adapter.Key),
		metrics:    cfg.metrics,
	}
}

func (j *job[T, K]) Name() string {
	return j.adapter.Name()
}

// Plan reconciles into a recorder only; the adapter's Add and Remove are never called.
func (j *job[T, K]) Plan(ctx context.Context, opts Options) (*Plan, error) {
	rec := &recorder[T, K]{adapter: j.adapter, limit: opts.SampleLimit}

	stats, err := j.run(ctx, rec)
	if err != nil {
		return nil, err
	}

	return rec.plan(j.Name(), ModePlan, false, stats), nil
}

// Apply streams events into the adapter while recording them for the report.
func (j *job[T, K]) Apply(ctx context.Context, opts Options) (*Plan, error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Mutates() {
		return &Plan{Job: j.Name(), Mode: ModeApply, Actions: []Action{}}, nil
	}

	rec := &recorder[T, K]{
		adapter: j.adapter,
		limit:   opts.SampleLimit,
		next:    metrics.CountingSink[T](j.metrics, j.Name(), j.adapter),
	}

	stats, err := j.run(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s stopped after %d adds and %d removes: %w",
			j.Name(), stats.Added, stats.Removed, err)
	}

	return rec.plan(j.Name(), ModeApply, true, stats), nil
}

// run opens the source first so that an unreadable source never reaches the target.
func (j *job[T, K]) run(ctx context.Context, sink orderedsync.Sink[T]) (orderedsync.Stats, error) {
	source, err := j.adapter.OpenSource(ctx)
	if err != nil {
		return orderedsync.Stats{}, fmt.Errorf("failed to open %s source: %w", j.Name(), err)
	}
	defer closeSequence(source)

	target, err := j.adapter.OpenTarget(ctx)
	if err != nil {
		return orderedsync.Stats{}, fmt.Errorf("failed to open %s target: %w", j.Name(), err)
	}
	defer closeSequence(target)

	return j.reconciler.Reconcile(ctx, source, target, sink)
}

func closeSequence[T any](seq orderedsync.Sequence[T]) {
	if c, ok := seq.(io.Closer); ok {
		_ = c.Close()
	}
}

// recorder is the sink of a run. It keeps a bounded sample of actions and
// forwards events to next when set.
type recorder[T any, K cmp.Ordered] struct {
	adapter   Adapter[T, K]
	next      orderedsync.Sink[T]
	limit     int
	actions   []Action
	truncated bool
}

func (r *recorder[T, K]) Add(ctx context.Context, item T) error {
	if r.next != nil {
		if err := r.next.Add(ctx, item); err != nil {
			return err
		}
	}
	r.record(ActionAdd, item)
	return nil
}

func (r *recorder[T, K]) Remove(ctx context.Context, item T) error {
	if r.next != nil {
		if err := r.next.Remove(ctx, item); err != nil {
			return err
		}
	}
	r.record(ActionRemove, item)
	return nil
}

func (r *recorder[T, K]) record(typ ActionType, item T) {
	if r.limit > 0 && len(r.actions) >= r.limit {
		r.truncated = true
		return
	}
	r.actions = append(r.actions, Action{
		Type: typ,
		Key:  strings.ReplaceAll(fmt.Sprint(r.adapter.Key(item)), orderedsync.KeySeparator, "|"),
		Item: r.adapter.Describe(item),
	})
}

func (r *recorder[T, K]) plan(name string, mode Mode, applied bool, stats orderedsync.Stats) *Plan {
	actions := r.actions
	if actions == nil {
		actions = []Action{}
	}
	return &Plan{
		Job:       name,
		Mode:      mode,
		Applied:   applied,
		Actions:   actions,
		Truncated: r.truncated,
		Summary: PlanSummary{
			Added:   stats.Added,
			Removed: stats.Removed,
			Matched: stats.Matched,
		},
	}
}
