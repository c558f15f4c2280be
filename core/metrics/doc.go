// Package metrics provides Prometheus instrumentation for reconciliation runs.
//
// Collectors are grouped in a Metrics value so tests can register them with a
// private registry. The Default instance uses the global registry and is the
// one exposed on the server's /metrics endpoint.
//
// # Collectors
//
//   - ordered_sync_events_total{job,kind}: applied add/remove events
//   - ordered_sync_runs_total{job,mode,status}: finished runs
//   - ordered_sync_run_duration_seconds{job,mode}: run wall time
package metrics
