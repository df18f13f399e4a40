// Package push is the fan-out transactional distribution engine.
//
// Given a block-list fragment and a set of target devices, the Coordinator
// drives one transaction per device through the protocol state machine:
//
//	connect → lock(candidate) → stage → validate → commit → unlock
//
// and collects one immutable Result per target, in submission order.
//
// # Failure Model
//
// Fail-fast within a session, isolate across sessions. Any step failure
// aborts that device's remaining forward steps and becomes the device's
// outcome category; it never affects another device. Unlock is best-effort
// cleanup: it runs on every exit path where the lock was acquired, and its
// own failure is recorded separately (Result.UnlockErr) without masking the
// original cause or a successful commit. No step is ever retried.
//
// Pre-flight invariant violations (empty target set, missing fragment) are
// the only errors Run returns, raised before any device is contacted.
//
// # Concurrency
//
// Sequential by default. Setting Workers enables bounded parallel sessions;
// the only shared state is the read-only fragment and credentials, and
// results are written by target index so report order never changes.
//
// # Usage Example
//
//	dialer := &push.NetconfDialer{
//	    Credentials: push.Credentials{Username: user, Password: password},
//	}
//	coord := push.NewCoordinator(dialer, fragment)
//	results, err := coord.Run(ctx, targets)
//	if err != nil {
//	    return err // pre-flight only
//	}
//	for _, r := range results {
//	    fmt.Println(r)
//	}
package push
