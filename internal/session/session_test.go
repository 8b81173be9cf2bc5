package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
)

func TestOpenMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data.xml"))

	s, result := Open(store, zerolog.Nop())
	if got := s.Current(); got != 1 {
		t.Errorf("Current() = %d, want 1", got)
	}
	if !result.Defaulted || result.Reason != ReasonMissing {
		t.Errorf("result = %+v, want defaulted/missing", result)
	}
}

func TestOpenMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "this is not xml"},
		{name: "truncated", content: "<paradium><current_sta"},
		{name: "missing field", content: "<paradium></paradium>"},
		{name: "non-numeric", content: "<paradium><current_station>abc</current_station></paradium>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.xml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			s, result := Open(NewFileStore(path), zerolog.Nop())
			if got := s.Current(); got != 1 {
				t.Errorf("Current() = %d, want 1", got)
			}
			if !result.Defaulted || result.Reason != ReasonMalformed {
				t.Errorf("result = %+v, want defaulted/malformed", result)
			}
		})
	}
}

func TestOpenAcceptsAnyRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xml")
	if err := os.WriteFile(path, []byte("<other><current_station>4</current_station></other>"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, result := Open(NewFileStore(path), zerolog.Nop())
	if got := s.Current(); got != 4 {
		t.Errorf("Current() = %d, want 4", got)
	}
	if result.Defaulted {
		t.Errorf("result = %+v, want loaded", result)
	}
}

func TestOpenUnreadableFile(t *testing.T) {
	// A directory where the file should be cannot be read as a document.
	path := filepath.Join(t.TempDir(), "data.xml")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	s, result := Open(NewFileStore(path), zerolog.Nop())
	if got := s.Current(); got != 1 {
		t.Errorf("Current() = %d, want 1", got)
	}
	if !result.Defaulted || result.Reason != ReasonUnreadable {
		t.Errorf("result = %+v, want defaulted/unreadable", result)
	}
}

func TestSetCurrentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "data.xml")
	s, _ := Open(NewFileStore(path), zerolog.Nop())

	got, err := s.SetCurrent(42)
	if err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	if got != 42 {
		t.Errorf("SetCurrent() = %d, want 42", got)
	}

	reopened, result := Open(NewFileStore(path), zerolog.Nop())
	if !result.Loaded() {
		t.Fatalf("result = %+v, want loaded", result)
	}
	if reopened.Current() != 42 {
		t.Errorf("Current() after reopen = %d, want 42", reopened.Current())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<current_station>42</current_station>") {
		t.Errorf("document = %s, want current_station 42", data)
	}
}

func TestSetCurrentAcceptsParsedString(t *testing.T) {
	dir := t.TempDir()
	fromInt, _ := Open(NewFileStore(filepath.Join(dir, "a.xml")), zerolog.Nop())
	fromString, _ := Open(NewFileStore(filepath.Join(dir, "b.xml")), zerolog.Nop())

	a, _ := fromInt.SetCurrent(7)

	id, err := core.ParseStationID("7")
	if err != nil {
		t.Fatalf("ParseStationID() error = %v", err)
	}
	b, _ := fromString.SetCurrent(id)

	if a != 7 || b != 7 {
		t.Errorf("SetCurrent results = %d, %d; want 7, 7", a, b)
	}

	// A non-numeric id is rejected before it reaches the session.
	if _, err := core.ParseStationID("seven"); err == nil {
		t.Fatal("ParseStationID(\"seven\") error = nil")
	}
	if fromString.Current() != 7 {
		t.Errorf("Current() = %d, want unchanged 7", fromString.Current())
	}
}

type failingStore struct {
	saves int
}

func (f *failingStore) Load() (State, error) { return State{CurrentStation: 3}, nil }

func (f *failingStore) Save(State) error {
	f.saves++
	return errors.New("disk full")
}

func TestSetCurrentPersistFailureKeepsSelection(t *testing.T) {
	store := &failingStore{}
	s, _ := Open(store, zerolog.Nop())

	got, err := s.SetCurrent(5)
	if err == nil {
		t.Error("SetCurrent() error = nil, want persist error")
	}
	if got != 5 {
		t.Errorf("SetCurrent() = %d, want 5", got)
	}
	if s.Current() != 5 {
		t.Errorf("Current() = %d, want 5", s.Current())
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data.xml"))

	if err := store.Delete(); err != nil {
		t.Errorf("Delete() on missing file error = %v", err)
	}
	if err := store.Save(State{CurrentStation: 2}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !store.Exists() {
		t.Error("Exists() = false after Save")
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if store.Exists() {
		t.Error("Exists() = true after Delete")
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoState) {
		t.Errorf("Load() error = %v, want ErrNoState", err)
	}
}
