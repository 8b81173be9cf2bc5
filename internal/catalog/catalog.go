// Package catalog loads the station catalog from its configuration document.
package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tessro/paradium/internal/core"
	perrors "github.com/tessro/paradium/internal/errors"
)

// Format is the encoding of a stations document.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// ErrMalformed is returned when the document as a whole cannot be parsed.
var ErrMalformed = errors.New("malformed stations document")

// ElementError describes a station element that was rejected.
type ElementError struct {
	Index int
	ID    string
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("station #%d (id %q): %v", e.Index+1, e.ID, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// FormatFor picks the document format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// Load reads the stations document at path.
// The returned catalog is never nil: an unreadable or malformed source yields
// an empty catalog together with the error, and rejected elements are left
// out while the rest of the document loads.
func Load(path string) (*core.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.EmptyCatalog(), fmt.Errorf("read stations: %w", err)
	}
	return Parse(data, FormatFor(path))
}

// Parse decodes a stations document.
func Parse(data []byte, format Format) (*core.Catalog, error) {
	var (
		elems []element
		err   error
	)
	switch format {
	case FormatYAML:
		elems, err = decodeYAML(data)
	default:
		elems, err = decodeXML(data)
	}
	if err != nil {
		return core.EmptyCatalog(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	result := perrors.PartialResult[[]core.Station]{}
	seen := make(map[core.StationID]bool, len(elems))
	for i, el := range elems {
		s, err := el.station()
		if err == nil && seen[s.ID] {
			err = fmt.Errorf("duplicate id %d", s.ID)
		}
		if err != nil {
			result.AddError(&ElementError{Index: i, ID: el.ID, Err: err})
			continue
		}
		seen[s.ID] = true
		result.Data = append(result.Data, s)
	}

	return core.NewCatalog(result.Data), result.Err()
}

// element is the format-neutral shape of one station entry.
type element struct {
	ID      string
	Name    string
	Website string
	URLs    []string
}

func (el element) station() (core.Station, error) {
	id, err := core.ParseStationID(el.ID)
	if err != nil {
		return core.Station{}, err
	}
	name := strings.TrimSpace(el.Name)
	if name == "" {
		return core.Station{}, errors.New("missing name")
	}
	var urls []string
	for _, u := range el.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return core.Station{}, errors.New("no stream urls")
	}
	return core.Station{
		ID:      id,
		Name:    name,
		Website: strings.TrimSpace(el.Website),
		URLs:    urls,
	}, nil
}

type xmlDocument struct {
	Stations []xmlStation `xml:",any"`
}

type xmlStation struct {
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name"`
	Website string   `xml:"website"`
	URLs    []xmlURL `xml:"url"`
}

// xmlURL accepts both <url>http://...</url> and a <url> container whose
// children each hold one stream address.
type xmlURL struct {
	Text  string   `xml:",chardata"`
	Items []string `xml:",any"`
}

func decodeXML(data []byte) ([]element, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	elems := make([]element, 0, len(doc.Stations))
	for _, s := range doc.Stations {
		el := element{ID: s.ID, Name: s.Name, Website: s.Website}
		for _, u := range s.URLs {
			if len(u.Items) > 0 {
				el.URLs = append(el.URLs, u.Items...)
				continue
			}
			el.URLs = append(el.URLs, u.Text)
		}
		elems = append(elems, el)
	}
	return elems, nil
}

type yamlDocument struct {
	Stations []yamlStation `yaml:"stations"`
}

type yamlStation struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Website string   `yaml:"website"`
	URLs    []string `yaml:"urls"`
}

func decodeYAML(data []byte) ([]element, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	elems := make([]element, 0, len(doc.Stations))
	for _, s := range doc.Stations {
		elems = append(elems, element(s))
	}
	return elems, nil
}
