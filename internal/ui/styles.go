package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the heimdallr CLI
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - committed devices
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failed devices
	WarningColor = lipgloss.Color("#FFA500") // Orange - unlock warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles for report rendering
var (
	// TitleStyle is for the run banner title
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			PaddingLeft(2)

	// ParamKeyStyle is for banner parameter keys (e.g., "List:")
	ParamKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// ParamValueStyle is for banner parameter values
	ParamValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// HostStyle is for device host names in report rows
	HostStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// CommittedStyle is for committed outcome text
	CommittedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// FailedStyle is for failed outcome text
	FailedStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// UnlockWarnStyle is for the unlock-failed annotation on a
	// committed device
	UnlockWarnStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Italic(true)

	// DurationStyle is for per-device elapsed times
	DurationStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// SummaryStyle is for the final counts line
	SummaryStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)
)

// Outcome markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// BannerBorderStyle returns the border style for the run banner
func BannerBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // Account for border characters
}
