// Package logging provides structured logging for Heimdallr.
//
// This package wraps zap with convenience functions for the logging patterns
// used throughout the tool. CLI output that the operator is meant to read is
// printed directly to stdout; the zap logger carries diagnostic detail and is
// silent by default.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Per-RPC detail (message IDs, step timings)
//   - Info: Transaction outcomes, run summaries
//   - Warn: Per-step failures, best-effort cleanup problems
//   - Error: Fatal issues (startup failures, invalid run configuration)
//
// # Configuration
//
// Logging is disabled unless a level is requested, either via the
// --log-level flag or the HEIMDALLR_LOG_LEVEL environment variable:
//
//	HEIMDALLR_LOG_LEVEL=debug heimdallr push --config fleet.yaml
//
// Initialize at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
// Domain helpers keep field names consistent across the codebase:
//
//	logging.LogStep(host, "lock", err, elapsed)
//	logging.LogRPC(host, "edit-config", messageID, err)
//	logging.LogTransaction(host, outcome.Status.String(), elapsed, outcome.Err)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
