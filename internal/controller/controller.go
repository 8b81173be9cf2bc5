// Package controller dispatches transport commands against the station
// catalog, the playback session and the playback engine.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
	perrors "github.com/tessro/paradium/internal/errors"
	"github.com/tessro/paradium/internal/metrics"
	"github.com/tessro/paradium/internal/session"
)

// Controller owns the catalog snapshot and serializes every command.
type Controller struct {
	// mu covers the read-modify-persist of the session and the engine batch.
	mu sync.Mutex

	catalog atomic.Pointer[core.Catalog]
	session *session.Session
	engine  core.Engine
	halter  core.Halter
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New creates a controller. A nil catalog is treated as empty; m may be nil.
func New(cat *core.Catalog, sess *session.Session, engine core.Engine, halter core.Halter, m *metrics.Metrics, logger zerolog.Logger) *Controller {
	c := &Controller{
		session: sess,
		engine:  engine,
		halter:  halter,
		metrics: m,
		logger:  logger.With().Str("component", "controller").Logger(),
	}
	c.SetCatalog(cat)
	m.SetCurrentStation(int(sess.Current()))
	return c
}

// SetCatalog publishes a new catalog. In-flight commands keep the snapshot
// they started with.
func (c *Controller) SetCatalog(cat *core.Catalog) {
	if cat == nil {
		cat = core.EmptyCatalog()
	}
	c.catalog.Store(cat)
	c.metrics.SetCatalogSize(cat.Len())
	c.logger.Info().Int("stations", cat.Len()).Msg("catalog published")
}

// Catalog returns the current catalog snapshot.
func (c *Controller) Catalog() *core.Catalog {
	return c.catalog.Load()
}

// Stations returns the stations in rotation order.
func (c *Controller) Stations() []core.Station {
	return c.Catalog().Stations()
}

// Dispatch parses raw and runs the command.
func (c *Controller) Dispatch(ctx context.Context, raw string) error {
	cmd, err := ParseCommand(raw)
	if err != nil {
		c.metrics.ObserveCommand("unknown", "rejected")
		c.logger.Warn().Str("command", raw).Msg("rejected unknown command")
		return err
	}
	return c.Run(ctx, cmd)
}

// Run executes cmd. Navigation persists the new selection before the engine
// is told to play it; an engine failure fails the command without undoing
// that selection.
func (c *Controller) Run(ctx context.Context, cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	switch cmd {
	case CommandPlay:
		err = c.playLocked(ctx)
	case CommandPrev:
		err = c.stepLocked(ctx, core.Prev)
	case CommandNext:
		err = c.stepLocked(ctx, core.Next)
	case CommandStop:
		err = c.engineCall(c.engine.Stop(ctx))
	case CommandShutdown:
		err = c.halter.Halt(ctx)
	default:
		err = &perrors.UnknownCommandError{Command: string(cmd)}
	}

	c.observe(cmd, err)
	return err
}

// Select tunes directly to id.
func (c *Controller) Select(ctx context.Context, id core.StationID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat := c.Catalog()
	s, ok := cat.Get(id)
	if !ok {
		err := fmt.Errorf("%w: %d", perrors.ErrStationNotFound, id)
		c.metrics.ObserveCommand("select", "rejected")
		return err
	}

	c.setCurrentLocked(s.ID)
	err := c.queueAndPlayLocked(ctx, s)
	c.observe("select", err)
	return err
}

func (c *Controller) playLocked(ctx context.Context) error {
	cat := c.Catalog()
	if cat.IsEmpty() {
		return perrors.ErrNoStations
	}

	s, ok := cat.Get(c.session.Current())
	if !ok {
		// Nothing to queue: resume whatever the engine already has.
		return c.engineCall(c.engine.Play(ctx))
	}
	return c.queueAndPlayLocked(ctx, s)
}

func (c *Controller) stepLocked(ctx context.Context, step func(*core.Catalog, core.StationID) (core.Station, error)) error {
	s, err := step(c.Catalog(), c.session.Current())
	if err != nil {
		return err
	}
	c.setCurrentLocked(s.ID)
	return c.queueAndPlayLocked(ctx, s)
}

// setCurrentLocked records the selection. Persist failures are logged by the
// session and counted here; the command carries on.
func (c *Controller) setCurrentLocked(id core.StationID) {
	if _, err := c.session.SetCurrent(id); err != nil {
		c.metrics.PersistFailure()
	}
	c.metrics.SetCurrentStation(int(id))
}

func (c *Controller) queueAndPlayLocked(ctx context.Context, s core.Station) error {
	if err := c.engine.ClearQueue(ctx); err != nil {
		return c.engineCall(err)
	}
	for _, u := range s.URLs {
		if err := c.engine.Enqueue(ctx, u); err != nil {
			return c.engineCall(err)
		}
	}
	if err := c.engine.Play(ctx); err != nil {
		return c.engineCall(err)
	}
	c.logger.Info().Int("station", int(s.ID)).Str("name", s.Name).Int("urls", len(s.URLs)).Msg("tuned")
	return nil
}

func (c *Controller) engineCall(err error) error {
	if err == nil {
		return nil
	}
	c.metrics.EngineError()
	return fmt.Errorf("engine: %w", err)
}

func (c *Controller) observe(cmd Command, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, perrors.ErrNoStations):
		result = "no_stations"
	case errors.Is(err, perrors.ErrUnknownCommand), errors.Is(err, perrors.ErrStationNotFound):
		result = "rejected"
	default:
		result = "error"
	}
	c.metrics.ObserveCommand(string(cmd), result)

	ev := c.logger.Info()
	if err != nil {
		ev = c.logger.Error().Err(err)
	}
	ev.Str("command", string(cmd)).Str("result", result).Int("station", int(c.session.Current())).Msg("command")
}

// CurrentStation describes the selected station, or the untuned sentinel
// when the selection is not in the catalog.
func (c *Controller) CurrentStation() StationDescriptor {
	return describe(c.Catalog(), c.session.Current())
}

// NowPlaying returns the engine's current title, or NothingPlaying.
func (c *Controller) NowPlaying(ctx context.Context) (string, error) {
	st, err := c.engine.Status(ctx)
	if err != nil {
		c.metrics.EngineError()
		return "", fmt.Errorf("engine: %w", err)
	}
	if st == nil || st.Title == "" {
		return NothingPlaying, nil
	}
	return st.Title, nil
}

// Status is a snapshot of the appliance for the JSON API and the TUI.
type Status struct {
	Station  StationDescriptor `json:"station"`
	Title    string            `json:"title"`
	State    core.EngineState  `json:"state"`
	Stations int               `json:"stations"`
	// EngineError is set when the engine could not be queried.
	EngineError string `json:"engine_error,omitempty"`
}

// Status reports the current station and engine state. An unreachable
// engine is reported in the result rather than as an error.
func (c *Controller) Status(ctx context.Context) Status {
	cat := c.Catalog()
	st := Status{
		Station:  describe(cat, c.session.Current()),
		Title:    NothingPlaying,
		State:    core.EngineUnknown,
		Stations: cat.Len(),
	}

	es, err := c.engine.Status(ctx)
	if err != nil {
		c.metrics.EngineError()
		st.EngineError = err.Error()
		return st
	}
	if es == nil {
		return st
	}
	if es.Title != "" {
		st.Title = es.Title
	}
	st.State = es.State
	return st
}

// Close persists the session one last time.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Persist(); err != nil {
		c.metrics.PersistFailure()
		return err
	}
	return nil
}
