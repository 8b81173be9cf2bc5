package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the TUI key bindings
type KeyMap struct {
	Toggle    key.Binding
	Next      key.Binding
	Prev      key.Binding
	Stop      key.Binding
	Tune      key.Binding
	Up        key.Binding
	Down      key.Binding
	Copy      key.Binding
	Refresh   key.Binding
	NextPanel key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/stop")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next station")),
		Prev:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev station")),
		Stop:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Tune:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "tune to selected")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy stream url")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Prev, k.Tune, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Next, k.Prev},
		{k.Up, k.Down, k.Tune, k.Copy},
		{k.Refresh, k.NextPanel, k.Help, k.Quit},
	}
}
