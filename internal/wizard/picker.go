package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/paradium/internal/core"
)

// StationModel is the bubbletea model for the station picker.
type StationModel struct {
	input    textinput.Model
	stations []core.Station
	matches  []core.Station
	current  core.StationID
	cursor   int
	selected *core.Station
	width    int
	height   int
}

// Styles for the station picker
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("208"))

	pickerItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	pickerSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	pickerCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82"))

	pickerDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewStationModel creates a picker over stations with the cursor on current.
func NewStationModel(stations []core.Station, current core.StationID) StationModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter stations..."
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 50

	m := StationModel{
		input:    ti,
		stations: stations,
		matches:  stations,
		current:  current,
		width:    80,
		height:   20,
	}
	for i, s := range stations {
		if s.ID == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m StationModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m StationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if len(m.matches) > 0 && m.cursor < len(m.matches) {
				s := m.matches[m.cursor]
				m.selected = &s
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.matches = Filter(m.stations, m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

// Filter returns the stations whose name contains query, ignoring case, or
// whose id equals it.
func Filter(stations []core.Station, query string) []core.Station {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return stations
	}

	var out []core.Station
	for _, s := range stations {
		if strings.Contains(strings.ToLower(s.Name), q) || s.ID.String() == q {
			out = append(out, s)
		}
	}
	return out
}

// View renders the model.
func (m StationModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("📻 Tune to"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case len(m.stations) == 0:
		b.WriteString(pickerDimStyle.Render("No stations"))
		b.WriteString("\n")
	case len(m.matches) == 0:
		b.WriteString(pickerDimStyle.Render("No matching stations"))
		b.WriteString("\n")
	default:
		maxResults := m.height - 8
		if maxResults < 5 {
			maxResults = 5
		}
		start := 0
		if m.cursor >= maxResults {
			start = m.cursor - maxResults + 1
		}
		for i := start; i < len(m.matches) && i < start+maxResults; i++ {
			s := m.matches[i]

			marker := "  "
			if s.ID == m.current {
				marker = pickerCurrentStyle.Render("● ")
			}
			line := marker + fmt.Sprintf("%3d  %s", s.ID, s.Name)
			if s.Website != "" {
				line += " " + pickerDimStyle.Render(s.Website)
			}

			if i == m.cursor {
				b.WriteString(pickerSelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(pickerItemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if rest := len(m.matches) - start - maxResults; rest > 0 {
			b.WriteString(pickerDimStyle.Render(fmt.Sprintf("  ...and %d more", rest)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("↑/↓ navigate • enter tune • esc quit"))

	return b.String()
}

// Selected returns the selected station, or nil if none.
func (m StationModel) Selected() *core.Station {
	return m.selected
}

// RunStationPicker runs the picker and returns the chosen station, or nil if
// the user quit without choosing.
func RunStationPicker(stations []core.Station, current core.StationID) (*core.Station, error) {
	model := NewStationModel(stations, current)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(StationModel).Selected(), nil
}
