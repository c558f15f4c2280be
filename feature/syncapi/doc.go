// Package syncapi exposes the registered reconciliation jobs over HTTP.
//
// # Routes
//
//   - GET  /sync/jobs: names of the registered jobs.
//   - POST /sync/:job: runs a job and returns its plan. Without confirm=true
//     the job only plans; dry_run=true forces planning even when confirmed.
//     limit caps the returned actions and defaults to DefaultSampleLimit.
//
// Unknown jobs answer 404 and failed runs 500. Concurrent requests for the
// same run share one execution.
package syncapi
