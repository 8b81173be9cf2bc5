package core

// Catalog is an ordered, immutable collection of stations.
// Order defines the rotation used by Next and Prev.
type Catalog struct {
	stations []Station
}

// NewCatalog builds a catalog from stations in the given order.
// The slice and each station's URLs are copied.
func NewCatalog(stations []Station) *Catalog {
	c := &Catalog{stations: make([]Station, len(stations))}
	for i, s := range stations {
		s.URLs = append([]string(nil), s.URLs...)
		c.stations[i] = s
	}
	return c
}

// EmptyCatalog returns a catalog with no stations.
func EmptyCatalog() *Catalog {
	return &Catalog{}
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stations)
}

// IsEmpty returns true if the catalog has no stations.
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Get returns the station with the given id.
func (c *Catalog) Get(id StationID) (Station, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c.stations[i], true
	}
	return Station{}, false
}

// IndexOf returns the position of id in the catalog, or -1.
func (c *Catalog) IndexOf(id StationID) int {
	if c == nil {
		return -1
	}
	for i := range c.stations {
		if c.stations[i].ID == id {
			return i
		}
	}
	return -1
}

// At returns the station at position i.
func (c *Catalog) At(i int) Station {
	return c.stations[i]
}

// Stations returns a copy of the stations in catalog order.
func (c *Catalog) Stations() []Station {
	if c == nil {
		return nil
	}
	out := make([]Station, len(c.stations))
	copy(out, c.stations)
	return out
}
