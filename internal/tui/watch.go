package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryanklein/heimdallr/internal/push"
	"github.com/ryanklein/heimdallr/internal/ui"
)

// Messages delivered into the watch model
type stepEventMsg push.StepEvent

type runDoneMsg struct {
	results []push.Result
	err     error
}

// deviceState tracks one device's live progress
type deviceState struct {
	Host       string
	Step       push.Step
	Started    bool
	Finished   bool
	Failed     bool
	UnlockWarn bool
	Err        error
}

// WatchModel is the live fleet view shown during a --watch run. It renders
// one row per device, updated from step events as transactions advance, and
// exits on its own when the run completes.
type WatchModel struct {
	devices []deviceState
	index   map[string]int

	spinner  spinner.Model
	finished bool

	// Final run outcome, available after the program exits
	Results []push.Result
	RunErr  error

	Width  int
	Height int
}

// NewWatchModel creates a watch model with one pending row per target
func NewWatchModel(targets []push.Target) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.WarningColor)

	devices := make([]deviceState, len(targets))
	index := make(map[string]int, len(targets))
	for i, target := range targets {
		devices[i] = deviceState{Host: target.Host}
		index[target.Host] = i
	}

	return WatchModel{
		devices: devices,
		index:   index,
		spinner: s,
	}
}

// Init starts the spinner
func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles step events, run completion, and user input
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// The run itself keeps going; quitting only abandons the view.
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case stepEventMsg:
		m.applyEvent(push.StepEvent(msg))
		return m, nil

	case runDoneMsg:
		m.Results = msg.results
		m.RunErr = msg.err
		m.finished = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyEvent folds one step event into the device's row state
func (m *WatchModel) applyEvent(ev push.StepEvent) {
	i, ok := m.index[ev.Host]
	if !ok {
		return
	}
	d := &m.devices[i]
	d.Started = true
	d.Step = ev.Step

	if !ev.Done {
		return
	}

	switch {
	case ev.Step == push.StepUnlock:
		// Unlock finishing ends the device either way. Its failure is a
		// warning annotation unless the transaction already failed.
		d.Finished = true
		if ev.Err != nil && !d.Failed {
			d.UnlockWarn = true
		}
	case ev.Err != nil:
		d.Failed = true
		d.Err = ev.Err
		// Lock and connect failures never reach unlock, so the row is done.
		if ev.Step == push.StepConnect || ev.Step == push.StepLock {
			d.Finished = true
		}
	case ev.Step == push.StepCommit:
		// Committed; only unlock remains.
	}
}

// View renders the live fleet table
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("DISTRIBUTING"))
	b.WriteString("\n\n")

	hostWidth := 0
	for _, d := range m.devices {
		if w := lipgloss.Width(d.Host); w > hostWidth {
			hostWidth = w
		}
	}

	for _, d := range m.devices {
		b.WriteString(m.renderDevice(d, hostWidth+2))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.finished {
		b.WriteString(ui.DurationStyle.Render("  done"))
	} else {
		b.WriteString(ui.DurationStyle.Render("  q to detach (the run continues)"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderDevice renders one device row
func (m WatchModel) renderDevice(d deviceState, hostWidth int) string {
	var marker, status string

	switch {
	case d.Failed:
		marker = ui.FailedStyle.Render(ui.FailureMarker)
		status = ui.FailedStyle.Render(fmt.Sprintf("%s failed", d.Step))
	case d.Finished:
		marker = ui.CommittedStyle.Render(ui.SuccessMarker)
		status = ui.CommittedStyle.Render("committed")
		if d.UnlockWarn {
			status += "  " + ui.UnlockWarnStyle.Render(ui.WarningMarker+" unlock failed")
		}
	case d.Started:
		marker = m.spinner.View()
		status = ui.DurationStyle.Render(d.Step.String())
	default:
		marker = ui.DurationStyle.Render("·")
		status = ui.DurationStyle.Render("pending")
	}

	padding := hostWidth - lipgloss.Width(d.Host)
	if padding < 1 {
		padding = 1
	}

	return "  " + marker + " " + ui.HostStyle.Render(d.Host) + strings.Repeat(" ", padding) + status
}

// Watch runs the live view around a distribution run. The run function is
// started in the background with an observer wired into the view; Watch
// blocks until the run completes (or the user detaches) and returns the
// run's results.
func Watch(targets []push.Target, run func(observe func(push.StepEvent)) ([]push.Result, error)) ([]push.Result, error) {
	model := NewWatchModel(targets)
	program := tea.NewProgram(model)

	done := make(chan runDoneMsg, 1)
	go func() {
		results, err := run(func(ev push.StepEvent) {
			program.Send(stepEventMsg(ev))
		})
		msg := runDoneMsg{results: results, err: err}
		done <- msg
		program.Send(msg)
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("failed to run watch view: %w", err)
	}

	// The view may have been detached before the run finished; wait for the
	// real outcome either way.
	msg := <-done
	return msg.results, msg.err
}
