package orderedsync

import (
	"cmp"
	"context"
)

// Stats summarizes one reconciliation.
type Stats struct {
	// Added is the number of Add events emitted.
	Added int `json:"added"`
	// Removed is the number of Remove events emitted.
	Removed int `json:"removed"`
	// Matched is the number of source/target pairs that cancelled out.
	Matched int `json:"matched"`
}

// Reconciler merges two key-ordered sequences and reports their differences.
// It keeps no state between calls and may be reused.
type Reconciler[T any, K cmp.Ordered] struct {
	key func(T) K
}

// New returns a Reconciler that orders elements by key.
func New[T any, K cmp.Ordered](key func(T) K) *Reconciler[T, K] {
	return &Reconciler[T, K]{key: key}
}

// Reconcile walks source and target in lock step and calls sink.Add for every
// element only the source has and sink.Remove for every element only the
// target has. Equal keys consume one element from each side.
//
// The first fetch or sink error stops the pass and is returned as a *SideError.
// Events emitted before the failure are not undone.
func (r *Reconciler[T, K]) Reconcile(ctx context.Context, source, target Sequence[T], sink Sink[T]) (Stats, error) {
	var stats Stats

	s, sok, err := source.Peek(ctx)
	if err != nil {
		return stats, &SideError{Side: SideSource, Op: OpFetch, Err: err}
	}
	t, tok, err := target.Peek(ctx)
	if err != nil {
		return stats, &SideError{Side: SideTarget, Op: OpFetch, Err: err}
	}

	for sok || tok {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		var advanceSource, advanceTarget bool
		switch {
		case !tok:
			if err := sink.Add(ctx, s); err != nil {
				return stats, &SideError{Side: SideSource, Op: OpAdd, Err: err}
			}
			stats.Added++
			advanceSource = true
		case !sok:
			if err := sink.Remove(ctx, t); err != nil {
				return stats, &SideError{Side: SideTarget, Op: OpRemove, Err: err}
			}
			stats.Removed++
			advanceTarget = true
		default:
			switch c := cmp.Compare(r.key(s), r.key(t)); {
			case c == 0:
				stats.Matched++
				advanceSource, advanceTarget = true, true
			case c < 0:
				if err := sink.Add(ctx, s); err != nil {
					return stats, &SideError{Side: SideSource, Op: OpAdd, Err: err}
				}
				stats.Added++
				advanceSource = true
			default:
				if err := sink.Remove(ctx, t); err != nil {
					return stats, &SideError{Side: SideTarget, Op: OpRemove, Err: err}
				}
				stats.Removed++
				advanceTarget = true
			}
		}

		if advanceSource {
			source.Advance()
			if s, sok, err = source.Peek(ctx); err != nil {
				return stats, &SideError{Side: SideSource, Op: OpFetch, Err: err}
			}
		}
		if advanceTarget {
			target.Advance()
			if t, tok, err = target.Peek(ctx); err != nil {
				return stats, &SideError{Side: SideTarget, Op: OpFetch, Err: err}
			}
		}
	}

	return stats, nil
}

// Reconcile reconciles sequences of directly ordered elements.
func Reconcile[T cmp.Ordered](ctx context.Context, source, target Sequence[T], sink Sink[T]) (Stats, error) {
	return New(func(v T) T { return v }).Reconcile(ctx, source, target, sink)
}

// ReconcileFuncs is Reconcile with plain callbacks in place of a Sink.
func ReconcileFuncs[T cmp.Ordered](ctx context.Context, source, target Sequence[T], onAdd, onRemove func(T)) (Stats, error) {
	return Reconcile(ctx, source, target, SinkFuncs[T]{
		OnAdd: func(_ context.Context, v T) error {
			if onAdd != nil {
				onAdd(v)
			}
			return nil
		},
		OnRemove: func(_ context.Context, v T) error {
			if onRemove != nil {
				onRemove(v)
			}
			return nil
		},
	})
}
