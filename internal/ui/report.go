package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryanklein/heimdallr/internal/blocklist"
	"github.com/ryanklein/heimdallr/internal/push"
)

// Banner describes the run parameters shown before any device is
// contacted.
type Banner struct {
	ListName string
	Comment  string
	Entries  int
	Targets  int
	Workers  int
	Width    int
}

// Render returns the styled run banner as a string
func (b Banner) Render() string {
	width := b.Width
	if width < MinTerminalWidth {
		width = GetTerminalWidth()
	}

	var lines []string
	lines = append(lines, TitleStyle.Render("BLOCK-LIST DISTRIBUTION"))
	lines = append(lines, "")
	lines = append(lines, bannerParam("List", b.ListName))
	lines = append(lines, bannerParam("Entries", fmt.Sprintf("%d", b.Entries)))
	lines = append(lines, bannerParam("Devices", fmt.Sprintf("%d", b.Targets)))
	if b.Workers > 1 {
		lines = append(lines, bannerParam("Workers", fmt.Sprintf("%d", b.Workers)))
	}
	if b.Comment != "" {
		lines = append(lines, bannerParam("Comment", b.Comment))
	}

	return BannerBorderStyle(width).Render(strings.Join(lines, "\n"))
}

func bannerParam(key, value string) string {
	return ParamKeyStyle.Render(key+":") + " " + ParamValueStyle.Render(value)
}

// Report renders the per-device outcomes of a finished run.
type Report struct {
	Results []push.Result
	Width   int
}

// NewReport creates a report for the given results
func NewReport(results []push.Result) *Report {
	return &Report{
		Results: results,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Report) SetWidth(width int) *Report {
	r.Width = width
	return r
}

// Render returns the full styled report: one row per device in
// submission order, a progress bar, and a summary line.
func (r *Report) Render() string {
	var b strings.Builder

	for _, result := range r.Results {
		b.WriteString(r.renderRow(result))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.renderBar())
	b.WriteString("\n\n")
	b.WriteString(r.renderSummary())
	b.WriteString("\n")

	return b.String()
}

// renderRow renders a single device outcome line
func (r *Report) renderRow(result push.Result) string {
	var b strings.Builder

	host := result.Host
	hostWidth := r.hostColumnWidth()
	padding := hostWidth - lipgloss.Width(host)
	if padding < 1 {
		padding = 1
	}

	b.WriteString("  ")
	if result.Committed() {
		b.WriteString(CommittedStyle.Render(SuccessMarker))
	} else {
		b.WriteString(FailedStyle.Render(FailureMarker))
	}
	b.WriteString(" ")
	b.WriteString(HostStyle.Render(host))
	b.WriteString(strings.Repeat(" ", padding))

	if result.Committed() {
		b.WriteString(CommittedStyle.Render("committed"))
		if result.UnlockErr != nil {
			b.WriteString("  ")
			b.WriteString(UnlockWarnStyle.Render(WarningMarker + " unlock failed"))
		}
	} else {
		b.WriteString(FailedStyle.Render(result.Status.String()))
		if result.Err != nil {
			b.WriteString(FailedStyle.Render(": " + result.Err.Error()))
		}
	}

	b.WriteString("  ")
	b.WriteString(DurationStyle.Render("(" + formatDuration(result.Duration) + ")"))

	return b.String()
}

// renderBar renders a static completion bar sized to the committed
// fraction of the fleet
func (r *Report) renderBar() string {
	if len(r.Results) == 0 {
		return ""
	}

	barWidth := r.Width - 20 // Leave room for the counts
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)

	committed, _ := push.Summary(r.Results)
	percent := float64(committed) / float64(len(r.Results))

	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  [%d/%d]", bar.ViewAs(percent), committed, len(r.Results)))
}

// renderSummary renders the final counts line
func (r *Report) renderSummary() string {
	committed, failed := push.Summary(r.Results)

	line := fmt.Sprintf("  %d committed, %d failed", committed, failed)
	if failed == 0 {
		return SummaryStyle.Render(line + "  " + SuccessMarker)
	}
	return SummaryStyle.Render(line)
}

// hostColumnWidth returns the padded width of the host column
func (r *Report) hostColumnWidth() int {
	width := 0
	for _, result := range r.Results {
		if w := lipgloss.Width(result.Host); w > width {
			width = w
		}
	}
	return width + 2
}

// String implements fmt.Stringer
func (r *Report) String() string {
	return r.Render()
}

// formatDuration trims a duration to a readable precision
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

// RenderInvalidEntries renders the pre-flight rejection list for
// malformed addresses. The run has already been aborted when this is
// shown.
func RenderInvalidEntries(invalid []blocklist.InvalidEntry) string {
	var b strings.Builder
	b.WriteString(FailedStyle.Render("  Invalid addresses:"))
	b.WriteString("\n")
	for _, in := range invalid {
		b.WriteString(FailedStyle.Render(fmt.Sprintf("    %s %s: %v", FailureMarker, in.Raw, in.Err)))
		b.WriteString("\n")
	}
	return b.String()
}
