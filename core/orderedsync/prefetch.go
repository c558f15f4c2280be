package orderedsync

import "context"

type fetched[T any] struct {
	elem T
	err  error
}

// PrefetchSequence reads ahead of the consumer on a separate goroutine.
// Elements are delivered in exactly the order the wrapped sequence produced
// them; only the I/O overlaps with the comparison.
type PrefetchSequence[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	ch     <-chan fetched[T]
	done   chan struct{}

	head     T
	loaded   bool
	finished bool
	err      error
}

// Prefetch starts reading up to depth elements ahead of seq. The wrapped
// sequence must not be used directly afterwards. Close stops the reader.
func Prefetch[T any](ctx context.Context, seq Sequence[T], depth int) *PrefetchSequence[T] {
	if depth < 1 {
		depth = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan fetched[T], depth)
	p := &PrefetchSequence[T]{
		ctx:    ctx,
		cancel: cancel,
		ch:     ch,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		defer close(ch)
		for {
			elem, ok, err := seq.Peek(ctx)
			if err != nil {
				select {
				case ch <- fetched[T]{err: err}:
				case <-ctx.Done():
				}
				return
			}
			if !ok {
				return
			}
			select {
			case ch <- fetched[T]{elem: elem}:
			case <-ctx.Done():
				return
			}
			seq.Advance()
		}
	}()

	return p
}

// Peek implements Sequence.
func (p *PrefetchSequence[T]) Peek(ctx context.Context) (T, bool, error) {
	var zero T
	switch {
	case p.err != nil:
		return zero, false, p.err
	case p.finished:
		return zero, false, nil
	case p.loaded:
		return p.head, true, nil
	}

	select {
	case r, ok := <-p.ch:
		if !ok {
			// The reader also stops when its context ends; that is not exhaustion.
			if err := p.ctx.Err(); err != nil {
				p.err = err
				return zero, false, err
			}
			p.finished = true
			return zero, false, nil
		}
		if r.err != nil {
			p.err = r.err
			return zero, false, r.err
		}
		p.head, p.loaded = r.elem, true
		return r.elem, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// Advance implements Sequence.
func (p *PrefetchSequence[T]) Advance() {
	var zero T
	p.head, p.loaded = zero, false
}

// Close stops the reader goroutine and waits for it to exit.
func (p *PrefetchSequence[T]) Close() error {
	p.cancel()
	<-p.done
	return nil
}
