package core

import (
	perrors "github.com/tessro/paradium/internal/errors"
)

// Next returns the station after current, wrapping to the first.
// An id that is not in the catalog resolves to the first station.
func Next(c *Catalog, current StationID) (Station, error) {
	if c.IsEmpty() {
		return Station{}, perrors.ErrNoStations
	}
	i := c.IndexOf(current)
	if i < 0 {
		return c.At(0), nil
	}
	return c.At((i + 1) % c.Len()), nil
}

// Prev returns the station before current, wrapping to the last.
// An id that is not in the catalog resolves to the first station.
func Prev(c *Catalog, current StationID) (Station, error) {
	if c.IsEmpty() {
		return Station{}, perrors.ErrNoStations
	}
	i := c.IndexOf(current)
	if i < 0 {
		return c.At(0), nil
	}
	return c.At((i - 1 + c.Len()) % c.Len()), nil
}
