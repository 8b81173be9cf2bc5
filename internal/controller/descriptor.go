package controller

import (
	"fmt"
	"html"

	"github.com/tessro/paradium/internal/core"
)

// NotTunedIn is shown when the current station id matches no catalog entry.
const NotTunedIn = "Not tuned in"

// NothingPlaying is reported when the engine has no title.
const NothingPlaying = "none"

// StationDescriptor describes the current station for display.
type StationDescriptor struct {
	Tuned   bool           `json:"tuned"`
	ID      core.StationID `json:"id"`
	Name    string         `json:"name,omitempty"`
	Website string         `json:"website,omitempty"`
}

func describe(c *core.Catalog, id core.StationID) StationDescriptor {
	s, ok := c.Get(id)
	if !ok {
		return StationDescriptor{ID: id}
	}
	return StationDescriptor{Tuned: true, ID: s.ID, Name: s.Name, Website: s.Website}
}

func (d StationDescriptor) String() string {
	if !d.Tuned {
		return NotTunedIn
	}
	return d.Name
}

// HTML renders the descriptor as a link to the station website when one is
// known, the bare name otherwise.
func (d StationDescriptor) HTML() string {
	if !d.Tuned {
		return NotTunedIn
	}
	if d.Website == "" {
		return html.EscapeString(d.Name)
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(d.Website), html.EscapeString(d.Name))
}
