package core

import (
	"errors"
	"testing"

	perrors "github.com/tessro/paradium/internal/errors"
)

func TestCatalogGet(t *testing.T) {
	c := testCatalog(2, 1, 3)

	s, ok := c.Get(1)
	if !ok {
		t.Fatal("Get(1) ok = false, want true")
	}
	if s.ID != 1 {
		t.Errorf("Get(1).ID = %d, want 1", s.ID)
	}

	if _, ok := c.Get(42); ok {
		t.Error("Get(42) ok = true, want false")
	}

	if got := c.IndexOf(3); got != 2 {
		t.Errorf("IndexOf(3) = %d, want 2", got)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	input := []Station{{ID: 1, Name: "A", URLs: []string{"http://a"}}}
	c := NewCatalog(input)

	input[0].Name = "changed"
	input[0].URLs[0] = "http://changed"

	s, _ := c.Get(1)
	if s.Name != "A" {
		t.Errorf("Name = %q, want %q", s.Name, "A")
	}
	if s.URLs[0] != "http://a" {
		t.Errorf("URLs[0] = %q, want %q", s.URLs[0], "http://a")
	}

	out := c.Stations()
	out[0].Name = "also changed"
	if s, _ := c.Get(1); s.Name != "A" {
		t.Errorf("Name after Stations() edit = %q, want %q", s.Name, "A")
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("Get() on nil catalog ok = true, want false")
	}
	if c.Stations() != nil {
		t.Error("Stations() on nil catalog should be nil")
	}
}

func TestParseStationID(t *testing.T) {
	tests := []struct {
		in      string
		want    StationID
		wantErr bool
	}{
		{in: "7", want: 7},
		{in: " 12 ", want: 12},
		{in: "-3", want: -3},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "7.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStationID(tt.in)
			if tt.wantErr {
				if !errors.Is(err, perrors.ErrInvalidStationID) {
					t.Errorf("ParseStationID(%q) error = %v, want ErrInvalidStationID", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStationID(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseStationID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestStationString(t *testing.T) {
	s := Station{Name: "FIP"}
	if got := s.String(); got != "FIP" {
		t.Errorf("String() = %q, want %q", got, "FIP")
	}
	s.Website = "https://fip.fr"
	if got := s.String(); got != "FIP (https://fip.fr)" {
		t.Errorf("String() = %q, want %q", got, "FIP (https://fip.fr)")
	}
}
