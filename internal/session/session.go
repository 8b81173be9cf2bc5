// Package session keeps the currently selected station and persists it
// across restarts.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
)

// Store loads and saves session state.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Reason explains why a session fell back to the default station.
type Reason string

const (
	ReasonMissing    Reason = "missing"
	ReasonUnreadable Reason = "unreadable"
	ReasonMalformed  Reason = "malformed"
)

// LoadResult records how a session was initialized.
type LoadResult struct {
	// Defaulted is true when stored state could not be used.
	Defaulted bool
	Reason    Reason
	Err       error
}

// Loaded returns true if the session came from stored state.
func (r LoadResult) Loaded() bool {
	return !r.Defaulted
}

func (r LoadResult) String() string {
	if !r.Defaulted {
		return "loaded"
	}
	return fmt.Sprintf("defaulted (%s)", r.Reason)
}

// Session holds the current station selection.
type Session struct {
	mu      sync.RWMutex
	current core.StationID
	store   Store
	logger  zerolog.Logger
}

// Open initializes a session from store. It always succeeds; when the stored
// state is missing, unreadable or malformed the session starts on
// core.DefaultStationID and the result says which of those happened.
func Open(store Store, logger zerolog.Logger) (*Session, LoadResult) {
	s := &Session{
		current: core.DefaultStationID,
		store:   store,
		logger:  logger.With().Str("component", "session").Logger(),
	}

	state, err := store.Load()
	if err != nil {
		result := LoadResult{Defaulted: true, Reason: classify(err), Err: err}
		s.logger.Warn().Err(err).Str("reason", string(result.Reason)).
			Int("station", int(s.current)).Msg("using default session state")
		return s, result
	}

	s.current = state.CurrentStation
	s.logger.Info().Int("station", int(s.current)).Msg("session state loaded")
	return s, LoadResult{}
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, ErrNoState):
		return ReasonMissing
	case errors.Is(err, ErrMalformedState):
		return ReasonMalformed
	default:
		return ReasonUnreadable
	}
}

// Current returns the selected station id. It never touches storage.
func (s *Session) Current() core.StationID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrent selects id and persists the session before returning.
// A persistence failure is logged and returned, but the new selection stays
// in effect.
func (s *Session) SetCurrent(id core.StationID) (core.StationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = id
	if err := s.persistLocked(); err != nil {
		s.logger.Error().Err(err).Int("station", int(id)).Msg("failed to persist session")
		return id, err
	}
	s.logger.Debug().Int("station", int(id)).Msg("session persisted")
	return id, nil
}

// Persist writes the current state to the store.
func (s *Session) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Session) persistLocked() error {
	if err := s.store.Save(State{CurrentStation: s.current}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
