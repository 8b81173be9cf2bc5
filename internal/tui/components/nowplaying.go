package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/tui/styles"
)

// NowPlaying displays the current station and title
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel. pos is the current station's index
// in the catalog, -1 when not tuned.
func (n *NowPlaying) Render(st *controller.Status, pos, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	switch {
	case st == nil:
		content = styles.Muted.Render("Connecting...")
	case st.EngineError != "":
		content = lipgloss.JoinVertical(lipgloss.Left,
			n.renderStation(st, width-4),
			"",
			styles.ErrorText.Render(styles.Truncate("Engine unavailable: "+st.EngineError, width-4)),
		)
	default:
		content = n.renderPlaying(st, pos, width-4)
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

func (n *NowPlaying) renderStation(st *controller.Status, width int) string {
	if !st.Station.Tuned {
		return styles.Muted.Render(controller.NotTunedIn)
	}
	name := styles.Title.Render(styles.Truncate(st.Station.Name, width-6))
	if st.Station.Website == "" {
		return name
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		name,
		styles.Link.Render(styles.Truncate(st.Station.Website, width)),
	)
}

func (n *NowPlaying) renderPlaying(st *controller.Status, pos, width int) string {
	icon := styles.StateIcon(st.State)

	title := st.Title
	titleStyle := styles.Subtitle
	if title == "" || title == controller.NothingPlaying {
		title = "nothing playing"
		titleStyle = styles.Dim
	}

	header := icon + " " + n.renderStation(st, width-2)
	if st.State == core.EnginePlaying {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", styles.OnAirBadge.Render("ON AIR"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		"  "+titleStyle.Render(styles.Truncate(title, width-2)),
		"",
		styles.Dial(pos, st.Stations, width),
	)
}
