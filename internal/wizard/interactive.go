// Package wizard holds the interactive prompts used by the CLI.
package wizard

import (
	"os"

	"golang.org/x/term"

	"github.com/tessro/paradium/internal/core"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
	run     func([]core.Station, core.StationID) (*core.Station, error)
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
		run:     RunStationPicker,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdin and stdout are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptStation launches the station picker if interactive mode is available.
// Returns the selected station, or nil if cancelled or not interactive.
func (i *Interactive) PromptStation(stations []core.Station, current core.StationID) (*core.Station, error) {
	if !i.CanInteract() || len(stations) == 0 {
		return nil, nil
	}
	return i.run(stations, current)
}
