package push

import (
	"fmt"
	"time"
)

// Status is the terminal outcome category of one device's transaction.
type Status int

const (
	// StatusCommitted means the device activated the candidate change.
	StatusCommitted Status = iota
	// StatusConnectionFailed means the session could not be established.
	StatusConnectionFailed
	// StatusLockFailed means the candidate lock was refused.
	StatusLockFailed
	// StatusEditFailed means the device rejected the candidate edit.
	StatusEditFailed
	// StatusValidateFailed means the candidate failed the device's checks.
	StatusValidateFailed
	// StatusCommitFailed means activation of the candidate failed.
	StatusCommitFailed
	// StatusUnlockFailed classifies a failure of the best-effort unlock.
	// It never overwrites a successful commit: a committed transaction
	// whose unlock failed reports StatusCommitted with Result.UnlockErr
	// set, and the unlock error itself carries this status.
	StatusUnlockFailed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusCommitted:
		return "committed"
	case StatusConnectionFailed:
		return "connection failed"
	case StatusLockFailed:
		return "lock failed"
	case StatusEditFailed:
		return "edit failed"
	case StatusValidateFailed:
		return "validate failed"
	case StatusCommitFailed:
		return "commit failed"
	case StatusUnlockFailed:
		return "unlock failed"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Result is the immutable record of how far one device's transaction
// progressed and why it stopped. The coordinator produces exactly one per
// target, in target-submission order.
type Result struct {
	// Host identifies the device.
	Host string

	// Status is the terminal outcome.
	Status Status

	// Err is the underlying cause when Status is a failure; nil for
	// StatusCommitted.
	Err error

	// UnlockErr records a failed best-effort unlock. It is independent of
	// Status: it can accompany StatusCommitted (committed but the lock
	// release failed) or any mid-transaction failure (the original cause
	// stays in Err and is never masked by cleanup problems).
	UnlockErr error

	// Duration is the wall time of the whole transaction attempt.
	Duration time.Duration
}

// Committed reports whether the device activated the change.
func (r Result) Committed() bool {
	return r.Status == StatusCommitted
}

// String returns a one-line per-device report suitable for direct display.
func (r Result) String() string {
	var line string
	switch {
	case r.Committed() && r.UnlockErr == nil:
		line = fmt.Sprintf("%s: committed", r.Host)
	case r.Committed():
		line = fmt.Sprintf("%s: committed (unlock failed: %v)", r.Host, r.UnlockErr)
	default:
		line = fmt.Sprintf("%s: %s: %v", r.Host, r.Status, r.Err)
		if r.UnlockErr != nil {
			line += fmt.Sprintf(" (unlock also failed: %v)", r.UnlockErr)
		}
	}
	return line
}

// Summary aggregates a result list into committed and failed counts.
func Summary(results []Result) (committed, failed int) {
	for _, r := range results {
		if r.Committed() {
			committed++
		} else {
			failed++
		}
	}
	return committed, failed
}
