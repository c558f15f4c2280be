// Package reconcile turns the merge reconciler into runnable jobs.
//
// A job couples an Adapter, which knows how to read a source and a target in
// key order and how to change the target, with orderedsync.Reconciler, which
// decides what has to change. The engine never loads either side into memory.
//
// # Architecture
//
// 1. Adapter: model-specific reading and writing (table rows, countries,
// objects). Sequences are opened source first, so an unreadable source aborts
// the job before a single delete reaches the target.
//
// 2. Job: Plan records what would change without calling the adapter's Add or
// Remove. Apply streams every event into the adapter as it is found.
//
// 3. Runner: job registry with singleflight so concurrent requests for the same
// run share one execution. Every run is logged with a run id and recorded in
// Prometheus.
//
// # Safety
//
// Apply is a no-op unless Options.Confirmed is true and Options.DryRun is false.
// A failed Apply is not rolled back; adapters should make each Add and Remove
// atomic so the job can simply be run again.
//
// # Usage Example
//
//	job := reconcile.NewJob[tables.Row, string](tables.NewAdapter(db, cfg))
//
//	plan, err := job.Plan(ctx, reconcile.Options{SampleLimit: 20})
//
//	runner := reconcile.NewRunner(logger, nil)
//	runner.Register(job)
//	plan, err = runner.Run(ctx, "tables", reconcile.Options{Confirmed: true})
package reconcile
