// Package orderedsync computes the additions and removals that turn an ordered
// target sequence into an ordered source sequence in a single forward pass.
//
// Neither sequence is ever held in memory. Both are pulled lazily through the
// Sequence interface and compared head to head, so a reconciliation of millions
// of rows needs no more state than the two current elements.
//
// # Ordering Contract
//
// Both sequences must be non-decreasing by the same comparison key. The
// reconciler does not sort and does not validate; unsorted input produces
// spurious adds and removes but never a crash or a loop. Wrap a sequence with
// Checked to turn a violation into ErrOutOfOrder.
//
// Composite orderings (numeric id then name, for example) must be encoded into
// a single order-preserving key. PadInt and JoinKey help with that: "10A" sorts
// before "1B" as strings, "0000000001B" does not.
//
// # Duplicates
//
// Each equal-key match consumes exactly one element from each side. A key seen
// three times in the source and once in the target yields two adds.
//
// # Usage
//
//	r := orderedsync.New(func(u User) string { return u.Email })
//	stats, err := r.Reconcile(ctx, source, target, orderedsync.SinkFuncs[User]{
//	    OnAdd:    func(ctx context.Context, u User) error { return repo.Insert(ctx, u) },
//	    OnRemove: func(ctx context.Context, u User) error { return repo.Delete(ctx, u.ID) },
//	})
package orderedsync
