// Package config loads and validates the YAML file describing one
// distribution run: target devices, the block-list name, addresses, and
// run options (port, workers, timeouts).
//
// Validation happens at load time and enforces the pre-flight invariants:
// a versioned schema, a non-empty list name, and a non-empty target set.
// A file that fails validation aborts the run before any device is
// contacted.
//
// Passwords are never part of the file. The CLI prompts for them (or reads
// HEIMDALLR_PASSWORD), so a fleet file is safe to commit to an inventory
// repository.
package config
