package orderedsync

import (
	"context"
	"iter"
)

// Sequence is a lazily produced, key-ordered stream of elements.
//
// Peek returns the current head without consuming it; ok is false once the
// sequence is exhausted. Calling Peek again before Advance must return the same
// head without further I/O. Advance drops the head so that the next Peek
// fetches the following element. Once Peek reports exhaustion it keeps doing so.
type Sequence[T any] interface {
	Peek(ctx context.Context) (elem T, ok bool, err error)
	Advance()
}

// NextFunc produces the next element of a sequence, or ok=false at the end.
type NextFunc[T any] func(ctx context.Context) (elem T, ok bool, err error)

// FuncSequence adapts a NextFunc to the Sequence interface.
// It buffers exactly one element: the current head. A fetch error is sticky:
// every later Peek returns it without calling next again.
type FuncSequence[T any] struct {
	next   NextFunc[T]
	head   T
	loaded bool
	done   bool
	err    error
}

// FromFunc returns a Sequence that pulls elements from next on demand.
func FromFunc[T any](next NextFunc[T]) *FuncSequence[T] {
	return &FuncSequence[T]{next: next}
}

// Peek implements Sequence.
func (s *FuncSequence[T]) Peek(ctx context.Context) (T, bool, error) {
	var zero T
	if s.err != nil {
		return zero, false, s.err
	}
	if s.done {
		return zero, false, nil
	}
	if s.loaded {
		return s.head, true, nil
	}

	elem, ok, err := s.next(ctx)
	if err != nil {
		s.err = err
		return zero, false, err
	}
	if !ok {
		s.done = true
		return zero, false, nil
	}
	s.head = elem
	s.loaded = true
	return elem, true, nil
}

// Advance implements Sequence.
func (s *FuncSequence[T]) Advance() {
	if s.done {
		return
	}
	var zero T
	s.head = zero
	s.loaded = false
}

// SliceSequence is an in-memory Sequence over a slice.
type SliceSequence[T any] struct {
	items []T
	pos   int
}

// FromSlice returns a Sequence over items. The slice is not copied.
func FromSlice[T any](items []T) *SliceSequence[T] {
	return &SliceSequence[T]{items: items}
}

// Peek implements Sequence.
func (s *SliceSequence[T]) Peek(ctx context.Context) (T, bool, error) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false, nil
	}
	return s.items[s.pos], true, nil
}

// Advance implements Sequence.
func (s *SliceSequence[T]) Advance() {
	if s.pos < len(s.items) {
		s.pos++
	}
}

// Len returns the number of elements not yet consumed.
func (s *SliceSequence[T]) Len() int {
	return len(s.items) - s.pos
}

// PullSequence adapts a range-over-func iterator. Close must be called when
// the sequence is abandoned before exhaustion to release the iterator.
type PullSequence[T any] struct {
	*FuncSequence[T]
	stop func()
}

// FromSeq returns a Sequence pulling from seq.
func FromSeq[T any](seq iter.Seq[T]) *PullSequence[T] {
	next, stop := iter.Pull(seq)
	return &PullSequence[T]{
		FuncSequence: FromFunc(func(ctx context.Context) (T, bool, error) {
			v, ok := next()
			return v, ok, nil
		}),
		stop: stop,
	}
}

// FromSeq2 returns a Sequence pulling from an iterator that yields errors
// alongside values. The first non-nil error is returned by Peek.
func FromSeq2[T any](seq iter.Seq2[T, error]) *PullSequence[T] {
	next, stop := iter.Pull2(seq)
	return &PullSequence[T]{
		FuncSequence: FromFunc(func(ctx context.Context) (T, bool, error) {
			v, err, ok := next()
			if err != nil {
				return v, false, err
			}
			return v, ok, nil
		}),
		stop: stop,
	}
}

// Close stops the underlying iterator.
func (s *PullSequence[T]) Close() error {
	s.stop()
	return nil
}

// Drain consumes seq and returns every remaining element in order.
func Drain[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	var out []T
	for {
		elem, ok, err := seq.Peek(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, elem)
		seq.Advance()
	}
}
