package orderedsync

import "context"

// Sink receives the events of a reconciliation.
// Add is called for elements present in the source but not the target,
// Remove for elements present in the target but not the source.
// A returned error aborts the reconciliation.
type Sink[T any] interface {
	Add(ctx context.Context, elem T) error
	Remove(ctx context.Context, elem T) error
}

// SinkFuncs adapts two functions to the Sink interface. A nil function
// ignores its events.
type SinkFuncs[T any] struct {
	OnAdd    func(ctx context.Context, elem T) error
	OnRemove func(ctx context.Context, elem T) error
}

// Add implements Sink.
func (f SinkFuncs[T]) Add(ctx context.Context, elem T) error {
	if f.OnAdd == nil {
		return nil
	}
	return f.OnAdd(ctx, elem)
}

// Remove implements Sink.
func (f SinkFuncs[T]) Remove(ctx context.Context, elem T) error {
	if f.OnRemove == nil {
		return nil
	}
	return f.OnRemove(ctx, elem)
}

// Collector is a Sink that records every event in memory.
type Collector[T any] struct {
	Added   []T
	Removed []T
}

// Add implements Sink.
func (c *Collector[T]) Add(_ context.Context, elem T) error {
	c.Added = append(c.Added, elem)
	return nil
}

// Remove implements Sink.
func (c *Collector[T]) Remove(_ context.Context, elem T) error {
	c.Removed = append(c.Removed, elem)
	return nil
}
