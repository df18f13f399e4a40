package push

import (
	"context"
	"time"

	"github.com/ryanklein/heimdallr/internal/blocklist"
	"github.com/ryanklein/heimdallr/internal/logging"
)

// Step identifies one protocol step of the per-device transaction.
type Step int

const (
	StepConnect Step = iota
	StepLock
	StepStage
	StepValidate
	StepCommit
	StepUnlock
)

// String returns the step name used in logs and progress displays.
func (s Step) String() string {
	switch s {
	case StepConnect:
		return "connect"
	case StepLock:
		return "lock"
	case StepStage:
		return "stage"
	case StepValidate:
		return "validate"
	case StepCommit:
		return "commit"
	case StepUnlock:
		return "unlock"
	default:
		return "unknown"
	}
}

// failureStatus maps a step to the outcome category its failure produces.
func (s Step) failureStatus() Status {
	switch s {
	case StepConnect:
		return StatusConnectionFailed
	case StepLock:
		return StatusLockFailed
	case StepStage:
		return StatusEditFailed
	case StepValidate:
		return StatusValidateFailed
	case StepCommit:
		return StatusCommitFailed
	default:
		return StatusUnlockFailed
	}
}

// StepEvent is a progress notification emitted as a transaction advances.
// Done=false marks the step starting; Done=true marks it finished, with
// Err set when it failed. Observers must not block.
type StepEvent struct {
	Host string
	Step Step
	Done bool
	Err  error
}

// runTransaction drives one device through the full protocol:
//
//	connect → lock → stage → validate → commit → unlock
//
// Any failure aborts the remaining forward steps (fail-fast) and is
// recorded as the Result's status. Unlock is attempted on every exit path
// where lock succeeded, including after a mid-transaction failure, so a
// held lock is never abandoned; an unlock failure is recorded separately
// and never masks the original cause or a successful commit.
func runTransaction(ctx context.Context, dialer Dialer, target Target, fragment *blocklist.Fragment, stepTimeout time.Duration, observe func(StepEvent)) Result {
	start := time.Now()
	host := target.Host

	emit := func(step Step, done bool, err error) {
		if observe != nil {
			observe(StepEvent{Host: host, Step: step, Done: done, Err: err})
		}
	}

	step := func(s Step, op func(context.Context) error) error {
		emit(s, false, nil)
		stepCtx, cancel := context.WithTimeout(ctx, stepTimeout)
		defer cancel()

		stepStart := time.Now()
		err := op(stepCtx)
		logging.LogStep(host, s.String(), err, time.Since(stepStart))
		if err != nil {
			err = newStepError(s.failureStatus(), host, err)
		}
		emit(s, true, err)
		return err
	}

	finish := func(status Status, err, unlockErr error) Result {
		result := Result{
			Host:      host,
			Status:    status,
			Err:       err,
			UnlockErr: unlockErr,
			Duration:  time.Since(start),
		}
		logging.LogTransaction(host, status.String(), result.Duration, err)
		return result
	}

	var session Session
	if err := step(StepConnect, func(stepCtx context.Context) error {
		var dialErr error
		session, dialErr = dialer.Dial(stepCtx, target)
		return dialErr
	}); err != nil {
		return finish(StatusConnectionFailed, err, nil)
	}
	defer func() { _ = session.Close() }()

	// Lock failure means the lock was never held, so there is nothing to
	// release: the session is simply torn down.
	if err := step(StepLock, session.Lock); err != nil {
		return finish(StatusLockFailed, err, nil)
	}

	// From here on the lock is held and unlock must run on every path.
	// The unlock context is detached from the parent's cancellation so an
	// expired run deadline cannot turn the best-effort release into a
	// guaranteed no-op.
	unlock := func() error {
		emit(StepUnlock, false, nil)
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stepTimeout)
		defer cancel()

		stepStart := time.Now()
		err := session.Unlock(unlockCtx)
		logging.LogStep(host, StepUnlock.String(), err, time.Since(stepStart))
		if err != nil {
			err = newStepError(StatusUnlockFailed, host, err)
		}
		emit(StepUnlock, true, err)
		return err
	}

	forward := []struct {
		step Step
		op   func(context.Context) error
	}{
		{StepStage, func(stepCtx context.Context) error { return session.EditConfig(stepCtx, fragment) }},
		{StepValidate, session.Validate},
		{StepCommit, func(stepCtx context.Context) error { return session.Commit(stepCtx, fragment.Comment()) }},
	}

	for _, f := range forward {
		if err := step(f.step, f.op); err != nil {
			return finish(f.step.failureStatus(), err, unlock())
		}
	}

	return finish(StatusCommitted, nil, unlock())
}
