package session

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessro/paradium/internal/core"
)

const (
	// DefaultStateFileName is the default name for the session document.
	DefaultStateFileName = "data.xml"
)

// ErrNoState is returned by Load when no session document exists.
var ErrNoState = errors.New("no session state stored")

// ErrMalformedState is returned by Load when the document cannot be used.
var ErrMalformedState = errors.New("malformed session state")

// State is the persisted part of a session.
type State struct {
	CurrentStation core.StationID
}

type document struct {
	XMLName        xml.Name `xml:"paradium"`
	CurrentStation string   `xml:"current_station"`
}

// storedDocument reads current_station under any root element.
type storedDocument struct {
	CurrentStation string `xml:"current_station"`
}

// FileStore persists session state as an XML document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store at the specified path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save overwrites the document with state.
func (s *FileStore) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := xml.MarshalIndent(document{CurrentStation: state.CurrentStation.String()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	// Write next to the destination, then rename over it so a crash
	// mid-write never leaves a truncated document behind.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set state file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Load reads the document from disk.
// It returns ErrNoState when the file does not exist and ErrMalformedState
// when it cannot be parsed or lacks a usable current_station.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, ErrNoState
		}
		return State{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var doc storedDocument
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if strings.TrimSpace(doc.CurrentStation) == "" {
		return State{}, fmt.Errorf("%w: missing current_station", ErrMalformedState)
	}
	id, err := core.ParseStationID(doc.CurrentStation)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	return State{CurrentStation: id}, nil
}

// Delete removes the stored document.
func (s *FileStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}

// Exists returns true if a state file exists.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the path to the state file.
func (s *FileStore) Path() string {
	return s.path
}
