// Package tui provides the interactive live view for --watch runs.
//
// Built on Bubble Tea, the view shows one row per target device and updates
// it in place as step events arrive from the distribution engine: pending,
// the step currently executing, then a committed or failed outcome. The
// program exits automatically when the run completes.
//
// Detaching the view (q, ctrl+c) never cancels the run: transactions in
// flight hold candidate locks and are left to finish, and Watch still
// returns their results.
package tui
