package push

import (
	"errors"
	"strings"
	"testing"
)

// TestResultString tests the one-line per-device report
func TestResultString(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   []string
		not    []string
	}{
		{
			name:   "Committed",
			result: Result{Host: "fw-01", Status: StatusCommitted},
			want:   []string{"fw-01", "committed"},
			not:    []string{"unlock"},
		},
		{
			name: "Committed with failed unlock stays committed",
			result: Result{
				Host:      "fw-01",
				Status:    StatusCommitted,
				UnlockErr: errors.New("session torn down"),
			},
			want: []string{"committed", "unlock failed", "session torn down"},
		},
		{
			name: "Failure shows category and cause",
			result: Result{
				Host:   "fw-02",
				Status: StatusValidateFailed,
				Err:    errors.New("candidate invalid"),
			},
			want: []string{"fw-02", "validate failed", "candidate invalid"},
		},
		{
			name: "Failure with failed unlock shows both",
			result: Result{
				Host:      "fw-02",
				Status:    StatusEditFailed,
				Err:       errors.New("rejected"),
				UnlockErr: errors.New("timeout"),
			},
			want: []string{"edit failed", "rejected", "unlock also failed", "timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("String() = %q, missing %q", got, want)
				}
			}
			for _, not := range tt.not {
				if strings.Contains(got, not) {
					t.Errorf("String() = %q, must not contain %q", got, not)
				}
			}
		})
	}
}

// TestErrorHelpers tests error classification across wrapping
func TestErrorHelpers(t *testing.T) {
	cause := errors.New("connection refused")
	err := newStepError(StatusConnectionFailed, "fw-01", cause)

	if !IsConnectionError(err) {
		t.Error("IsConnectionError() = false for connection failure")
	}
	if IsLockError(err) {
		t.Error("IsLockError() = true for connection failure")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}

	wrapped := errors.Join(errors.New("context"), err)
	if status, ok := StatusOf(wrapped); !ok || status != StatusConnectionFailed {
		t.Errorf("StatusOf(wrapped) = %v,%v, want connection failure", status, ok)
	}

	if _, ok := StatusOf(errors.New("plain")); ok {
		t.Error("StatusOf() matched a plain error")
	}
}
