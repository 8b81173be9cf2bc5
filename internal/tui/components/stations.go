package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/tui/styles"
)

// Stations displays the catalog with a movable cursor
type Stations struct {
	selected int
	offset   int
}

// NewStations creates a new Stations component
func NewStations() *Stations {
	return &Stations{}
}

// SelectNext moves the cursor down
func (s *Stations) SelectNext(n int) {
	if s.selected < n-1 {
		s.selected++
	}
}

// SelectPrev moves the cursor up
func (s *Stations) SelectPrev() {
	if s.selected > 0 {
		s.selected--
	}
}

// Selected returns the cursor index
func (s *Stations) Selected() int {
	return s.selected
}

// SelectIndex moves the cursor to i
func (s *Stations) SelectIndex(i int) {
	if i >= 0 {
		s.selected = i
	}
}

// Render renders the stations panel
func (s *Stations) Render(stations []core.Station, current core.StationID, width, height int, focused bool) string {
	title := styles.PanelTitle(fmt.Sprintf("Stations (%d)", len(stations)), focused)

	var content string
	if len(stations) == 0 {
		content = styles.Muted.Render("No stations configured")
	} else {
		content = s.renderStations(stations, current, width-4, height-4, focused)
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

func (s *Stations) renderStations(stations []core.Station, current core.StationID, width, maxLines int, focused bool) string {
	// Adjust selected if out of bounds
	if s.selected >= len(stations) {
		s.selected = len(stations) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	if maxLines < 1 {
		maxLines = 1
	}

	// Keep the cursor visible
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+maxLines {
		s.offset = s.selected - maxLines + 1
	}

	lines := make([]string, 0, maxLines)
	for i := s.offset; i < len(stations) && len(lines) < maxLines; i++ {
		st := stations[i]

		selector := "  "
		if focused && i == s.selected {
			selector = "▸ "
		}

		marker := " "
		if st.ID == current {
			marker = styles.Playing.Render("●")
		}

		name := styles.Truncate(fmt.Sprintf("%3d  %s", st.ID, st.Name), width-4)
		if focused && i == s.selected {
			name = styles.Highlight.Render(name)
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", selector, marker, name))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
