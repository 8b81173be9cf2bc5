package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/paradium/internal/core"
)

// Colors - a warm, valve-radio palette
var (
	// Primary colors
	Primary   = lipgloss.Color("#D97706") // Amber dial
	Secondary = lipgloss.Color("#10B981") // Green
	Accent    = lipgloss.Color("#F59E0B") // Light amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Neutral colors
	Border    = lipgloss.Color("#4B5563") // Light gray
	Text      = lipgloss.Color("#F9FAFB") // White
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
	TextDim   = lipgloss.Color("#6B7280") // Darker gray

	// On-air red
	OnAir = lipgloss.Color("#DC2626")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Secondary)

	Stopped = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	Link = lipgloss.NewStyle().
		Foreground(Info).
		Underline(true)

	OnAirBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Background(OnAir).
			Padding(0, 1)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)
)

// Panel returns the frame style for a panel.
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// StateIcon returns an icon for the engine state.
func StateIcon(state core.EngineState) string {
	switch state {
	case core.EnginePlaying:
		return Playing.Render("▶")
	case core.EnginePaused:
		return Stopped.Render("⏸")
	case core.EngineStopped:
		return Stopped.Render("■")
	default:
		return ErrorText.Render("?")
	}
}

// Dial renders a tuning scale with a needle at position pos of n stations.
func Dial(pos, n, width int) string {
	if width < 3 {
		width = 3
	}
	if n <= 0 || pos < 0 {
		return Dim.Render(strings.Repeat("─", width))
	}
	needle := 0
	if n > 1 {
		needle = pos * (width - 1) / (n - 1)
	}
	return Dim.Render(strings.Repeat("─", needle)) +
		Highlight.Render("┃") +
		Dim.Render(strings.Repeat("─", width-needle-1))
}

// Truncate shortens s to width runes with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
