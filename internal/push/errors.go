package push

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration marks pre-flight invariant violations (empty
// target set, missing fragment). These are fatal to the whole run and are
// raised before any device is contacted, unlike per-device failures which
// become Results.
var ErrInvalidConfiguration = errors.New("invalid run configuration")

// Error is a per-device protocol failure: one step, one host, one cause.
// It is the only error type the transaction runner produces for protocol
// divergence; unexpected conditions (transport corruption) surface as the
// wrapped cause.
type Error struct {
	// Status classifies which step failed.
	Status Status

	// Host is the device the failure originated on.
	Host string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Status, e.Host, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

func newStepError(status Status, host string, err error) *Error {
	return &Error{Status: status, Host: host, Err: err}
}

// StatusOf extracts the failure status from an error chain.
// Returns false if the error is not a per-device protocol failure.
func StatusOf(err error) (Status, bool) {
	var pushErr *Error
	if errors.As(err, &pushErr) {
		return pushErr.Status, true
	}
	return 0, false
}

// IsConnectionError reports whether err is a session-establishment failure.
func IsConnectionError(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == StatusConnectionFailed
}

// IsLockError reports whether err is a candidate-lock failure.
func IsLockError(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == StatusLockFailed
}

// IsUnlockError reports whether err is a best-effort unlock failure.
func IsUnlockError(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == StatusUnlockFailed
}

// IsInvalidConfiguration reports whether err is a pre-flight invariant
// violation rather than a per-device failure.
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
