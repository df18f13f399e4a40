package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/ryanklein/heimdallr/internal/push"
)

func watchTargets() []push.Target {
	return []push.Target{{Host: "fw-01"}, {Host: "fw-02"}}
}

// TestApplyEvent tests folding step events into device row state
func TestApplyEvent(t *testing.T) {
	t.Run("Committed device finishes on unlock", func(t *testing.T) {
		m := NewWatchModel(watchTargets())

		for _, step := range []push.Step{push.StepConnect, push.StepLock, push.StepStage, push.StepValidate, push.StepCommit, push.StepUnlock} {
			m.applyEvent(push.StepEvent{Host: "fw-01", Step: step, Done: false})
			m.applyEvent(push.StepEvent{Host: "fw-01", Step: step, Done: true})
		}

		d := m.devices[0]
		if !d.Finished || d.Failed || d.UnlockWarn {
			t.Errorf("device state = %+v, want finished clean", d)
		}
		// The other device is untouched
		if m.devices[1].Started {
			t.Errorf("unrelated device started: %+v", m.devices[1])
		}
	})

	t.Run("Lock failure finishes the row immediately", func(t *testing.T) {
		m := NewWatchModel(watchTargets())

		m.applyEvent(push.StepEvent{Host: "fw-01", Step: push.StepConnect, Done: true})
		m.applyEvent(push.StepEvent{Host: "fw-01", Step: push.StepLock, Done: true, Err: errors.New("lock held")})

		d := m.devices[0]
		if !d.Failed || !d.Finished {
			t.Errorf("device state = %+v, want failed and finished", d)
		}
	})

	t.Run("Unlock failure after commit is a warning not a failure", func(t *testing.T) {
		m := NewWatchModel(watchTargets())

		m.applyEvent(push.StepEvent{Host: "fw-02", Step: push.StepCommit, Done: true})
		m.applyEvent(push.StepEvent{Host: "fw-02", Step: push.StepUnlock, Done: true, Err: errors.New("timeout")})

		d := m.devices[1]
		if d.Failed {
			t.Errorf("device marked failed by unlock: %+v", d)
		}
		if !d.Finished || !d.UnlockWarn {
			t.Errorf("device state = %+v, want finished with unlock warning", d)
		}
	})

	t.Run("Unlock failure after a real failure stays a failure", func(t *testing.T) {
		m := NewWatchModel(watchTargets())

		m.applyEvent(push.StepEvent{Host: "fw-01", Step: push.StepValidate, Done: true, Err: errors.New("invalid")})
		m.applyEvent(push.StepEvent{Host: "fw-01", Step: push.StepUnlock, Done: true, Err: errors.New("timeout")})

		d := m.devices[0]
		if !d.Failed || d.UnlockWarn {
			t.Errorf("device state = %+v, want failed without unlock warning", d)
		}
	})

	t.Run("Events for unknown hosts are ignored", func(t *testing.T) {
		m := NewWatchModel(watchTargets())
		m.applyEvent(push.StepEvent{Host: "stranger", Step: push.StepLock, Done: true})
		for _, d := range m.devices {
			if d.Started {
				t.Errorf("device %s started from a stranger's event", d.Host)
			}
		}
	})
}

// TestWatchView tests that every device has a row
func TestWatchView(t *testing.T) {
	m := NewWatchModel(watchTargets())
	m.applyEvent(push.StepEvent{Host: "fw-01", Step: push.StepValidate, Done: false})

	out := m.View()
	for _, want := range []string{"fw-01", "fw-02", "validate", "pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}
