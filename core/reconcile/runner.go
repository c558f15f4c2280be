package reconcile

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"ordered-sync/core/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner holds the registered jobs and serializes concurrent runs of the same
// job: two reconciliations writing the same target at once would each see a
// stale target. Concurrent applies of a job share one execution whatever their
// sample limits, so a joined caller receives the first caller's sample.
//
// A shared run is detached from the callers' contexts and bounded by the
// runner's own timeout, so one caller going away does not fail the others.
type Runner struct {
	mu      sync.RWMutex
	jobs    map[string]Job
	sf      singleflight.Group
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRunner creates an empty runner.
func NewRunner(logger *zap.Logger, m *metrics.Metrics) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.Default
	}
	return &Runner{
		jobs:    make(map[string]Job),
		logger:  logger,
		metrics: m,
	}
}

// SetRunTimeout bounds every run started after the call. Zero disables the bound.
func (r *Runner) SetRunTimeout(d time.Duration) {
	r.mu.Lock()
	r.timeout = d
	r.mu.Unlock()
}

func (r *Runner) runTimeout() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.timeout
}

// Register adds job, replacing any job with the same name.
func (r *Runner) Register(job Job) {
	r.mu.Lock()
	r.jobs[job.Name()] = job
	r.mu.Unlock()
}

// Lookup returns the job registered under name.
func (r *Runner) Lookup(name string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[name]
	return job, ok
}

// Jobs returns the registered job names in sorted order.
func (r *Runner) Jobs() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Run executes the named job with Run semantics.
// Concurrent applies of a job share one execution, as do concurrent plans with
// the same sample limit. Run returns early with ctx.Err() when ctx is done, but
// the shared execution keeps going for the other callers.
func (r *Runner) Run(ctx context.Context, name string, opts Options) (*Plan, error) {
	job, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}

	mode := ModeOf(opts)
	key := name + "|" + string(mode)
	if mode == ModePlan {
		key = fmt.Sprintf("%s|%d", key, opts.SampleLimit)
	}

	timeout := r.runTimeout()
	ch := r.sf.DoChan(key, func() (any, error) {
		runCtx := context.WithoutCancel(ctx)
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, timeout)
			defer cancel()
		}

		runID := uuid.NewString()
		l := r.logger.With(
			zap.String("run_id", runID),
			zap.String("job", name),
			zap.String("mode", string(mode)),
		)
		l.Info("Reconciliation started")

		started := time.Now()
		plan, err := Run(runCtx, job, opts)
		r.metrics.ObserveRun(name, string(mode), started, err)
		if err != nil {
			l.Error("Reconciliation failed", zap.Error(err), zap.Duration("duration", time.Since(started)))
			return nil, err
		}

		plan.RunID = runID
		l.Info("Reconciliation finished",
			zap.Int("added", plan.Summary.Added),
			zap.Int("removed", plan.Summary.Removed),
			zap.Int("matched", plan.Summary.Matched),
			zap.Bool("applied", plan.Applied),
			zap.Duration("duration", time.Since(started)),
		)
		return plan, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			r.logger.Debug("Joined in-flight reconciliation", zap.String("job", name))
		}
		return res.Val.(*Plan), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
