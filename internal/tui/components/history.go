package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/paradium/internal/tui/styles"
)

// HistoryEntry is a title heard during this session
type HistoryEntry struct {
	Title   string
	Station string
	HeardAt time.Time
}

// History displays recently heard titles
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(entries []HistoryEntry, now time.Time, width, height int, focused bool) string {
	title := styles.PanelTitle("Recently Heard", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("Nothing heard yet")
	} else {
		content = h.renderHistory(entries, now, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(entries []HistoryEntry, now time.Time, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		ago := humanize.RelTime(entry.HeardAt, now, "ago", "from now")
		if now.Sub(entry.HeardAt) < time.Minute {
			ago = "now"
		}

		// Title on the left, time right-aligned
		avail := width - len(ago) - 1
		info := styles.Truncate(entry.Title+" · "+entry.Station, avail)
		pad := avail - lipgloss.Width(info)
		if pad < 0 {
			pad = 0
		}

		lines = append(lines, info+lipgloss.NewStyle().Width(pad+1).Render("")+styles.Dim.Render(ago))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
