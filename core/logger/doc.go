// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so that every line about one request can be correlated.
// Reconciliation runs attach a run_id the same way.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (CLI)
//   - Output: stderr, stdout or a file path
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Sync started", zap.String("job", "tables"))
package logger
