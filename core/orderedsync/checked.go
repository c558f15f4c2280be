package orderedsync

import (
	"cmp"
	"context"
	"fmt"
)

// CheckedSequence wraps a Sequence and fails with ErrOutOfOrder as soon as a
// key lower than its predecessor is peeked.
type CheckedSequence[T any, K cmp.Ordered] struct {
	seq     Sequence[T]
	key     func(T) K
	head    K
	hasHead bool
	last    K
	hasLast bool
}

// Checked returns seq wrapped with an ordering check on key.
func Checked[T any, K cmp.Ordered](seq Sequence[T], key func(T) K) *CheckedSequence[T, K] {
	return &CheckedSequence[T, K]{seq: seq, key: key}
}

// Peek implements Sequence.
func (c *CheckedSequence[T, K]) Peek(ctx context.Context) (T, bool, error) {
	elem, ok, err := c.seq.Peek(ctx)
	if err != nil || !ok {
		return elem, ok, err
	}

	k := c.key(elem)
	if c.hasLast && cmp.Less(k, c.last) {
		var zero T
		return zero, false, fmt.Errorf("%w: %v after %v", ErrOutOfOrder, k, c.last)
	}
	c.head, c.hasHead = k, true
	return elem, true, nil
}

// Advance implements Sequence.
func (c *CheckedSequence[T, K]) Advance() {
	if c.hasHead {
		c.last, c.hasLast = c.head, true
		c.hasHead = false
	}
	c.seq.Advance()
}
