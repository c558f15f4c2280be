package reconcile

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ordered-sync/core/metrics"
	"ordered-sync/core/orderedsync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// slowJob blocks in Plan until released so concurrent calls overlap.
type slowJob struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (j *slowJob) Name() string { return "slow" }

func (j *slowJob) Plan(ctx context.Context, opts Options) (*Plan, error) {
	if j.calls.Add(1) == 1 {
		close(j.started)
	}
	<-j.release
	return &Plan{Job: "slow", Mode: ModePlan, Summary: PlanSummary{Added: 1}}, nil
}

func (j *slowJob) Apply(ctx context.Context, opts Options) (*Plan, error) {
	return &Plan{Job: "slow", Mode: ModeApply, Applied: true}, nil
}

// gatedAdapter keeps its target in memory and holds the first target listing
// until released, after the snapshot has been taken.
type gatedAdapter struct {
	mu      sync.Mutex
	source  []string
	target  []string
	adds    int
	gated   atomic.Bool
	started chan struct{}
	release chan struct{}
}

func newGatedAdapter(source ...string) *gatedAdapter {
	return &gatedAdapter{source: source, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedAdapter) Name() string                { return "gated" }
func (g *gatedAdapter) Key(item string) string      { return item }
func (g *gatedAdapter) Describe(item string) string { return item }

func (g *gatedAdapter) OpenSource(ctx context.Context) (orderedsync.Sequence[string], error) {
	return orderedsync.FromSlice(g.source), nil
}

func (g *gatedAdapter) OpenTarget(ctx context.Context) (orderedsync.Sequence[string], error) {
	g.mu.Lock()
	snapshot := slices.Clone(g.target)
	g.mu.Unlock()

	if g.gated.CompareAndSwap(false, true) {
		close(g.started)
		<-g.release
	}
	return orderedsync.FromSlice(snapshot), nil
}

func (g *gatedAdapter) Add(ctx context.Context, item string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.adds++
	g.target = append(g.target, item)
	slices.Sort(g.target)
	return nil
}

func (g *gatedAdapter) Remove(ctx context.Context, item string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.target = slices.DeleteFunc(g.target, func(s string) bool { return s == item })
	return nil
}

// blockingJob plans until its context is done.
type blockingJob struct{}

func (blockingJob) Name() string { return "blocking" }

func (blockingJob) Plan(ctx context.Context, opts Options) (*Plan, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingJob) Apply(ctx context.Context, opts Options) (*Plan, error) {
	return blockingJob{}.Plan(ctx, opts)
}

func TestRunner_Registry(t *testing.T) {
	r := NewRunner(zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	r.Register(NewJob[string, string](&mockAdapter{}))
	r.Register(&slowJob{})

	assert.Equal(t, []string{"mock", "slow"}, r.Jobs())

	_, ok := r.Lookup("mock")
	assert.True(t, ok)

	_, err := r.Run(context.Background(), "missing", Options{})
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestRunner_RunAssignsRunIDAndRecordsMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := NewRunner(zap.NewNop(), m)

	adapter := &mockAdapter{source: []string{"a", "b"}, target: []string{"b"}}
	r.Register(NewJob[string, string](adapter, WithMetrics(m)))

	plan, err := r.Run(context.Background(), "mock", Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, plan.RunID)
	assert.Equal(t, ModePlan, plan.Mode)
	assert.Empty(t, adapter.added)

	applied, err := r.Run(context.Background(), "mock", Options{Confirmed: true})
	require.NoError(t, err)
	assert.NotEqual(t, plan.RunID, applied.RunID)
	assert.True(t, applied.Applied)
	assert.Equal(t, []string{"a"}, adapter.added)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("mock", "plan", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("mock", "apply", "success")))
}

func TestRunner_FailedRunIsCounted(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := NewRunner(nil, m)
	r.Register(NewJob[string, string](&mockAdapter{sourceErr: assert.AnError}, WithMetrics(m)))

	_, err := r.Run(context.Background(), "mock", Options{})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("mock", "plan", "error")))
}

func TestRunner_ConcurrentRunsShareExecution(t *testing.T) {
	r := NewRunner(zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	job := &slowJob{started: make(chan struct{}), release: make(chan struct{})}
	r.Register(job)

	var wg sync.WaitGroup
	plans := make([]*Plan, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		plans[0], _ = r.Run(context.Background(), "slow", Options{})
	}()
	<-job.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		plans[1], _ = r.Run(context.Background(), "slow", Options{})
	}()

	// Give the second caller time to join the in-flight run.
	time.Sleep(50 * time.Millisecond)
	close(job.release)
	wg.Wait()

	assert.Equal(t, int32(1), job.calls.Load())
	require.NotNil(t, plans[0])
	require.NotNil(t, plans[1])
	assert.Same(t, plans[0], plans[1])
}

func TestRunner_ConcurrentAppliesWithDifferentLimits(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := NewRunner(zap.NewNop(), m)
	adapter := newGatedAdapter("a")
	r.Register(NewJob[string, string](adapter, WithMetrics(m)))

	var wg sync.WaitGroup
	plans := make([]*Plan, 2)
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		plans[0], errs[0] = r.Run(context.Background(), "gated", Options{Confirmed: true, SampleLimit: 10})
	}()
	<-adapter.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		plans[1], errs[1] = r.Run(context.Background(), "gated", Options{Confirmed: true, SampleLimit: 100})
	}()

	time.Sleep(50 * time.Millisecond)
	close(adapter.release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Same(t, plans[0], plans[1])
	assert.Equal(t, 1, adapter.adds)
	assert.Equal(t, []string{"a"}, adapter.target)
}

func TestRunner_CancelledCallerDoesNotFailJoinedCaller(t *testing.T) {
	r := NewRunner(zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	job := &slowJob{started: make(chan struct{}), release: make(chan struct{})}
	r.Register(job)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx, "slow", Options{})
		firstErr <- err
	}()
	<-job.started

	type result struct {
		plan *Plan
		err  error
	}
	second := make(chan result, 1)
	go func() {
		plan, err := r.Run(context.Background(), "slow", Options{})
		second <- result{plan, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(job.release)
	res := <-second
	require.NoError(t, res.err)
	require.NotNil(t, res.plan)
	assert.Equal(t, 1, res.plan.Summary.Added)
	assert.Equal(t, int32(1), job.calls.Load())
}

func TestRunner_RunTimeoutBoundsDetachedRun(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := NewRunner(zap.NewNop(), m)
	r.SetRunTimeout(20 * time.Millisecond)
	r.Register(blockingJob{})

	_, err := r.Run(context.Background(), "blocking", Options{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("blocking", "plan", "error")))
}
