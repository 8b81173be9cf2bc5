// Package tui is a terminal remote control for a paradium server.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/server"
	"github.com/tessro/paradium/internal/tui/components"
	"github.com/tessro/paradium/internal/tui/styles"
)

// Remote is the server API the TUI drives. *remote.Client satisfies it.
type Remote interface {
	Stations(ctx context.Context) (*server.StationsResponse, error)
	Status(ctx context.Context) (*controller.Status, error)
	Command(ctx context.Context, cmd string) (*controller.Status, error)
	Select(ctx context.Context, id core.StationID) (*controller.Status, error)
}

// Panel represents which panel is focused
type Panel int

const (
	PanelStations Panel = iota
	PanelHistory
	panelCount
)

const (
	requestTimeout = 5 * time.Second
	maxHistory     = 50
)

// App holds the TUI application dependencies
type App struct {
	remote      Remote
	refreshRate time.Duration
	copy        func(string) error
}

// NewApp creates a new TUI application
func NewApp(remote Remote, refreshRate time.Duration) *App {
	if refreshRate <= 0 {
		refreshRate = time.Second
	}
	return &App{
		remote:      remote,
		refreshRate: refreshRate,
		copy:        clipboard.WriteAll,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	status   *controller.Status
	stations []core.Station
	current  core.StationID
	history  []components.HistoryEntry

	// Components
	nowPlaying   *components.NowPlaying
	stationsView *components.Stations
	historyView  *components.History
	keys         KeyMap
	help         help.Model

	// Overlays
	showHelp bool

	// Transient messages
	lastError   error
	errorExpiry time.Time
	notice      string
	noticeUntil time.Time

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	return Model{
		app:          app,
		focusedPanel: PanelStations,
		nowPlaying:   components.NewNowPlaying(),
		stationsView: components.NewStations(),
		historyView:  components.NewHistory(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
}

// Messages
type tickMsg time.Time
type statusMsg *controller.Status
type stationsMsg *server.StationsResponse
type errMsg error
type noticeMsg string

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		st, err := m.app.remote.Status(ctx)
		if err != nil {
			return errMsg(err)
		}
		return statusMsg(st)
	}
}

func (m Model) fetchStations() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := m.app.remote.Stations(ctx)
		if err != nil {
			return errMsg(err)
		}
		return stationsMsg(resp)
	}
}

func (m Model) command(cmd string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		st, err := m.app.remote.Command(ctx, cmd)
		if err != nil {
			return errMsg(err)
		}
		return statusMsg(st)
	}
}

func (m Model) tune(id core.StationID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		st, err := m.app.remote.Select(ctx, id)
		if err != nil {
			return errMsg(err)
		}
		return statusMsg(st)
	}
}

func (m Model) copyURL(s core.Station) tea.Cmd {
	return func() tea.Msg {
		if len(s.URLs) == 0 {
			return noticeMsg(s.Name + " has no stream url")
		}
		if err := m.app.copy(s.URLs[0]); err != nil {
			return errMsg(err)
		}
		return noticeMsg("Copied " + s.URLs[0])
	}
}

// Init starts polling
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.fetchStatus(),
		m.fetchStations(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.tick(), m.fetchStatus())

	case statusMsg:
		m.clearExpiredError()
		prev := m.status
		m.status = msg
		m.current = msg.Station.ID
		m.recordTitle(prev, msg, time.Now())

		// A station the list does not know means the catalog changed
		if msg.Stations != len(m.stations) {
			return m, m.fetchStations()
		}
		return m, nil

	case stationsMsg:
		m.clearExpiredError()
		firstLoad := m.stations == nil
		m.stations = msg.Stations
		m.current = msg.Current
		if firstLoad {
			m.stationsView.SelectIndex(indexOf(m.stations, m.current))
		}
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		m.noticeUntil = time.Now().Add(3 * time.Second)
		return m, nil

	case errMsg:
		m.lastError = msg
		m.errorExpiry = time.Now().Add(5 * time.Second)
		return m, nil
	}

	return m, nil
}

func (m *Model) clearExpiredError() {
	if time.Now().After(m.errorExpiry) {
		m.lastError = nil
	}
}

// recordTitle adds a history entry when a new title comes on air.
func (m *Model) recordTitle(prev, curr *controller.Status, now time.Time) {
	if curr.Title == "" || curr.Title == controller.NothingPlaying {
		return
	}
	if prev != nil && prev.Title == curr.Title && prev.Station.ID == curr.Station.ID {
		return
	}

	entry := components.HistoryEntry{
		Title:   curr.Title,
		Station: curr.Station.String(),
		HeardAt: now,
	}
	m.history = append([]components.HistoryEntry{entry}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NextPanel):
		m.focusedPanel = (m.focusedPanel + 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.status != nil && m.status.State == core.EnginePlaying {
			return m, m.command(string(controller.CommandStop))
		}
		return m, m.command(string(controller.CommandPlay))

	case key.Matches(msg, m.keys.Stop):
		return m, m.command(string(controller.CommandStop))

	case key.Matches(msg, m.keys.Next):
		return m, m.command(string(controller.CommandNext))

	case key.Matches(msg, m.keys.Prev):
		return m, m.command(string(controller.CommandPrev))

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.fetchStatus(), m.fetchStations())
	}

	// Panel-specific keys
	if m.focusedPanel == PanelStations && len(m.stations) > 0 {
		switch {
		case key.Matches(msg, m.keys.Down):
			m.stationsView.SelectNext(len(m.stations))
		case key.Matches(msg, m.keys.Up):
			m.stationsView.SelectPrev()
		case key.Matches(msg, m.keys.Tune):
			return m, m.tune(m.selectedStation().ID)
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyURL(m.selectedStation())
		}
	}

	return m, nil
}

func (m Model) selectedStation() core.Station {
	i := m.stationsView.Selected()
	if i < 0 || i >= len(m.stations) {
		i = 0
	}
	return m.stations[i]
}

func indexOf(stations []core.Station, id core.StationID) int {
	for i, s := range stations {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	// Left: Now Playing (top), History (bottom). Right: Stations.
	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth
	topHeight := m.height * 45 / 100
	bottomHeight := m.height - topHeight - 1
	fullHeight := m.height - 1

	nowPlaying := m.nowPlaying.Render(m.status, indexOf(m.stations, m.current), leftWidth-2, topHeight-2, false)
	historyView := m.historyView.Render(m.history, time.Now(), leftWidth-2, bottomHeight-2, m.focusedPanel == PanelHistory)
	stationsView := m.stationsView.Render(m.stations, m.current, rightWidth-2, fullHeight-2, m.focusedPanel == PanelStations)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, historyView)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, stationsView)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())

	switch {
	case m.lastError != nil:
		status = styles.ErrorText.Render("Error: " + m.lastError.Error())
	case m.notice != "" && time.Now().Before(m.noticeUntil):
		status = styles.Playing.Render(m.notice)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := styles.Highlight.Render("Paradium - Keyboard Shortcuts")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		styles.Dim.Render("Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(body))
}

// Run starts the TUI application
func Run(remote Remote, refreshRate time.Duration) error {
	model := NewModel(NewApp(remote, refreshRate))
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
