// Package ui provides terminal output for the heimdallr CLI.
//
// This package uses Lipgloss and Bubbles to render the run banner and the
// per-device fleet report. The components follow a "run once and exit"
// pattern: they render styled output but require no interaction. The
// interactive live view for --watch lives in the tui package instead.
//
// # Report Layout
//
// A finished run renders one row per device, in the order devices were
// submitted, so the report is stable across sequential and concurrent runs:
//
//	✓ edge-fw-01.example.net   committed            (1.24s)
//	✗ edge-fw-02.example.net   lock failed: ...     (310ms)
//	✓ edge-fw-03.example.net   committed ⚠ unlock failed  (2.01s)
//
// followed by a completion bar and a counts summary. A committed device
// whose unlock failed is still reported as committed; the unlock problem is
// an annotation, never the outcome.
//
// # Passwords
//
// ReadPassword is the single entry point for credentials: environment
// variable first, then an echo-disabled terminal prompt. No other package
// reads passwords.
//
// # Logging Integration
//
// Logging is controlled via the HEIMDALLR_LOG_LEVEL environment variable.
// When unset, zap output is silent so the curated report stays clean.
package ui
