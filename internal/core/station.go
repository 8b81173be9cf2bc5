package core

import (
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/tessro/paradium/internal/errors"
)

// DefaultStationID is selected when no usable session state exists.
const DefaultStationID StationID = 1

// StationID identifies a station within a catalog.
type StationID int

// ParseStationID parses a station id received as text at a system boundary.
func ParseStationID(s string) (StationID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", perrors.ErrInvalidStationID, s)
	}
	return StationID(n), nil
}

func (id StationID) String() string {
	return strconv.Itoa(int(id))
}

// Station represents one radio station.
type Station struct {
	ID      StationID `json:"id"`
	Name    string    `json:"name"`
	Website string    `json:"website,omitempty"`
	URLs    []string  `json:"urls"`
}

// HasWebsite returns true if the station links to a website.
func (s Station) HasWebsite() bool {
	return s.Website != ""
}

func (s Station) String() string {
	if s.Website == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Website)
}
