package orderedsync

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconcileStrings(t *testing.T, source, target []string) (added, removed []string) {
	t.Helper()
	c := &Collector[string]{}
	_, err := Reconcile(context.Background(), FromSlice(source), FromSlice(target), c)
	require.NoError(t, err)
	return c.Added, c.Removed
}

func TestReconcile_Samples(t *testing.T) {
	tests := []struct {
		name    string
		source  []string
		target  []string
		added   []string
		removed []string
	}{
		{name: "both empty"},
		{name: "add last", source: []string{"A", "B"}, target: []string{"A"}, added: []string{"B"}},
		{name: "add first", source: []string{"A", "B"}, target: []string{"B"}, added: []string{"A"}},
		{name: "add middle", source: []string{"A", "B", "C"}, target: []string{"A", "C"}, added: []string{"B"}},
		{name: "remove only", target: []string{"A"}, removed: []string{"A"}},
		{name: "remove last", source: []string{"A"}, target: []string{"A", "B"}, removed: []string{"B"}},
		{name: "remove first", source: []string{"B"}, target: []string{"A", "B"}, removed: []string{"A"}},
		{name: "remove middle", source: []string{"A", "C"}, target: []string{"A", "B", "C"}, removed: []string{"B"}},
		{name: "disjoint", source: []string{"A"}, target: []string{"B"}, added: []string{"A"}, removed: []string{"B"}},
		{name: "shifted", source: []string{"A", "B"}, target: []string{"B", "C"}, added: []string{"A"}, removed: []string{"C"}},
		{
			name:    "interleaved",
			source:  []string{"A", "B", "D", "E", "G"},
			target:  []string{"A", "C", "D", "F"},
			added:   []string{"B", "E", "G"},
			removed: []string{"C", "F"},
		},
		{name: "duplicate in source", source: []string{"A", "A"}, target: []string{"A"}, added: []string{"A"}},
		{name: "duplicate in target", source: []string{"A"}, target: []string{"A", "A"}, removed: []string{"A"}},
		{
			name:    "duplicate runs",
			source:  []string{"A", "B", "B", "B", "C"},
			target:  []string{"B", "C", "C", "D"},
			added:   []string{"A", "B", "B"},
			removed: []string{"C", "D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := reconcileStrings(t, tt.source, tt.target)
			assert.Equal(t, tt.added, added)
			assert.Equal(t, tt.removed, removed)
		})
	}
}

func TestReconcile_Stats(t *testing.T) {
	stats, err := Reconcile(context.Background(),
		FromSlice([]string{"A", "B", "D", "E", "G"}),
		FromSlice([]string{"A", "C", "D", "F"}),
		&Collector[string]{},
	)
	require.NoError(t, err)
	assert.Equal(t, Stats{Added: 3, Removed: 2, Matched: 2}, stats)
}

func TestReconcile_OneSideEmpty(t *testing.T) {
	items := []string{"a", "b", "b", "c", "z"}

	added, removed := reconcileStrings(t, items, nil)
	assert.Equal(t, items, added)
	assert.Empty(t, removed)

	added, removed = reconcileStrings(t, nil, items)
	assert.Empty(t, added)
	assert.Equal(t, items, removed)
}

type entity struct {
	id   int
	name string
}

func TestReconciler_KeyProjection(t *testing.T) {
	r := New(func(e entity) int { return e.id })

	source := []entity{{1, "john"}, {2, "jane"}, {10, "joe"}}
	target := []entity{{1, "JOHN"}, {3, "old"}, {10, "joe"}}

	c := &Collector[entity]{}
	stats, err := r.Reconcile(context.Background(), FromSlice(source), FromSlice(target), c)
	require.NoError(t, err)

	// Elements are equal when their keys are; other fields are not compared.
	assert.Equal(t, []entity{{2, "jane"}}, c.Added)
	assert.Equal(t, []entity{{3, "old"}}, c.Removed)
	assert.Equal(t, 2, stats.Matched)
}

func TestReconciler_Reusable(t *testing.T) {
	r := New(strings.ToLower)

	for i := 0; i < 3; i++ {
		c := &Collector[string]{}
		_, err := r.Reconcile(context.Background(), FromSlice([]string{"a", "B"}), FromSlice([]string{"A", "c"}), c)
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, c.Added)
		assert.Equal(t, []string{"c"}, c.Removed)
	}
}

func TestReconcileFuncs(t *testing.T) {
	var added, removed []int
	_, err := ReconcileFuncs(context.Background(),
		FromSlice([]int{1, 2, 3}),
		FromSlice([]int{2, 4}),
		func(v int) { added = append(added, v) },
		func(v int) { removed = append(removed, v) },
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, added)
	assert.Equal(t, []int{4}, removed)
}

func TestReconcile_NilSinkFuncs(t *testing.T) {
	stats, err := Reconcile(context.Background(), FromSlice([]int{1}), FromSlice([]int{2}), SinkFuncs[int]{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Added: 1, Removed: 1}, stats)
}

func TestReconcile_SinkErrorStopsPass(t *testing.T) {
	boom := errors.New("insert failed")
	var added []string
	var removed []string

	sink := SinkFuncs[string]{
		OnAdd: func(_ context.Context, v string) error {
			if v == "C" {
				return boom
			}
			added = append(added, v)
			return nil
		},
		OnRemove: func(_ context.Context, v string) error {
			removed = append(removed, v)
			return nil
		},
	}

	_, err := Reconcile(context.Background(),
		FromSlice([]string{"A", "C", "E"}),
		FromSlice([]string{"B", "D"}),
		sink,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var sideErr *SideError
	require.ErrorAs(t, err, &sideErr)
	assert.Equal(t, SideSource, sideErr.Side)
	assert.Equal(t, OpAdd, sideErr.Op)

	// Events before the failure stay emitted, nothing after it runs.
	assert.Equal(t, []string{"A"}, added)
	assert.Equal(t, []string{"B"}, removed)
}

func TestReconcile_RemoveErrorCarriesTargetSide(t *testing.T) {
	boom := errors.New("delete failed")
	_, err := Reconcile(context.Background(),
		FromSlice([]string{}),
		FromSlice([]string{"A"}),
		SinkFuncs[string]{OnRemove: func(context.Context, string) error { return boom }},
	)

	var sideErr *SideError
	require.ErrorAs(t, err, &sideErr)
	assert.Equal(t, SideTarget, sideErr.Side)
	assert.Equal(t, OpRemove, sideErr.Op)
	assert.Equal(t, "target remove: delete failed", err.Error())
}

func failingAfter(items []string, n int, err error) Sequence[string] {
	i := 0
	return FromFunc(func(ctx context.Context) (string, bool, error) {
		if i == n {
			return "", false, err
		}
		if i >= len(items) {
			return "", false, nil
		}
		v := items[i]
		i++
		return v, true, nil
	})
}

func TestReconcile_FetchErrors(t *testing.T) {
	boom := errors.New("read timeout")

	t.Run("source fails on first fetch", func(t *testing.T) {
		c := &Collector[string]{}
		_, err := Reconcile(context.Background(), failingAfter(nil, 0, boom), FromSlice([]string{"A"}), c)

		var sideErr *SideError
		require.ErrorAs(t, err, &sideErr)
		assert.Equal(t, SideSource, sideErr.Side)
		assert.Equal(t, OpFetch, sideErr.Op)
		assert.Empty(t, c.Removed, "no destructive call before the source is readable")
	})

	t.Run("target fails mid stream", func(t *testing.T) {
		c := &Collector[string]{}
		_, err := Reconcile(context.Background(),
			FromSlice([]string{"A", "B", "C"}),
			failingAfter([]string{"A", "B", "C"}, 2, boom),
			c,
		)
		assert.ErrorIs(t, err, boom)

		var sideErr *SideError
		require.ErrorAs(t, err, &sideErr)
		assert.Equal(t, SideTarget, sideErr.Side)
	})
}

func TestReconcile_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	sink := SinkFuncs[int]{OnAdd: func(context.Context, int) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return nil
	}}

	_, err := Reconcile(ctx, FromSlice([]int{1, 2, 3, 4}), FromSlice([]int{}), sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestReconcile_UnsortedInputTerminates(t *testing.T) {
	// Output is unspecified for unsorted input; it must still consume everything once.
	stats, err := Reconcile(context.Background(),
		FromSlice([]string{"C", "A", "B"}),
		FromSlice([]string{"B", "A"}),
		&Collector[string]{},
	)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Added+stats.Removed+2*stats.Matched)
}

func randomSorted(r *rand.Rand, n int) []string {
	alphabet := []string{"a", "b", "c", "d", "e", "f"}
	out := make([]string, n)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	slices.Sort(out)
	return out
}

func counts(items []string) map[string]int {
	m := make(map[string]int)
	for _, v := range items {
		m[v]++
	}
	return m
}

func TestReconcile_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		source := randomSorted(r, r.Intn(12))
		target := randomSorted(r, r.Intn(12))

		added, removed := reconcileStrings(t, source, target)

		// Applying the events to the target yields the source multiset.
		result := counts(target)
		for _, v := range added {
			result[v]++
		}
		for _, v := range removed {
			result[v]--
		}
		for k, v := range result {
			if v == 0 {
				delete(result, k)
			}
		}
		require.Equal(t, counts(source), result, "source=%v target=%v", source, target)

		// Adds are exactly S-T and removes exactly T-S, floored at zero.
		sc, tc := counts(source), counts(target)
		ac, rc := counts(added), counts(removed)
		for _, k := range []string{"a", "b", "c", "d", "e", "f"} {
			require.Equal(t, max(0, sc[k]-tc[k]), ac[k])
			require.Equal(t, max(0, tc[k]-sc[k]), rc[k])
		}

		// Each sink sees keys in non-decreasing order.
		require.True(t, slices.IsSorted(added))
		require.True(t, slices.IsSorted(removed))

		// Reconciling a sequence with itself is silent.
		a, rm := reconcileStrings(t, source, source)
		require.Empty(t, a)
		require.Empty(t, rm)
	}
}
