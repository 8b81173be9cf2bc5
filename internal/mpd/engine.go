// Package mpd drives a Music Player Daemon as the appliance's playback engine.
package mpd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
	perrors "github.com/tessro/paradium/internal/errors"
)

// conn is the subset of *mpd.Client the engine uses.
type conn interface {
	Clear() error
	Add(uri string) error
	Play(pos int) error
	Stop() error
	CurrentSong() (mpd.Attrs, error)
	Status() (mpd.Attrs, error)
	Ping() error
	Close() error
}

// DialFunc opens a new daemon connection.
type DialFunc func() (conn, error)

// Options configures an Engine.
type Options struct {
	Host     string
	Port     int
	Socket   string
	Password string
	// Keepalive is the ping interval used by Run. Zero disables pinging.
	Keepalive time.Duration
}

// Address returns the network and address to dial.
func (o Options) Address() (network, addr string) {
	if o.Socket != "" {
		return "unix", o.Socket
	}
	return "tcp", net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// Engine implements core.Engine over one long-lived MPD connection.
type Engine struct {
	mu        sync.Mutex
	c         conn
	dial      DialFunc
	keepalive time.Duration
	logger    zerolog.Logger
}

var _ core.Engine = (*Engine)(nil)

// New creates an Engine that dials lazily on first use.
func New(opts Options, logger zerolog.Logger) *Engine {
	network, addr := opts.Address()
	dial := func() (conn, error) {
		var (
			c   *mpd.Client
			err error
		)
		if opts.Password != "" {
			c, err = mpd.DialAuthenticated(network, addr, opts.Password)
		} else {
			c, err = mpd.Dial(network, addr)
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return newEngine(dial, opts.Keepalive, logger.With().Str("component", "mpd").Str("addr", addr).Logger())
}

func newEngine(dial DialFunc, keepalive time.Duration, logger zerolog.Logger) *Engine {
	return &Engine{
		dial:      dial,
		keepalive: keepalive,
		logger:    logger,
	}
}

// Stop stops playback.
func (e *Engine) Stop(ctx context.Context) error {
	return e.do(ctx, "stop", func(c conn) error { return c.Stop() })
}

// ClearQueue empties the playlist.
func (e *Engine) ClearQueue(ctx context.Context) error {
	return e.do(ctx, "clear", func(c conn) error { return c.Clear() })
}

// Enqueue appends a stream URL to the playlist.
func (e *Engine) Enqueue(ctx context.Context, url string) error {
	return e.do(ctx, "add", func(c conn) error { return c.Add(url) })
}

// Play starts playback from the current playlist position.
func (e *Engine) Play(ctx context.Context) error {
	return e.do(ctx, "play", func(c conn) error { return c.Play(-1) })
}

// Status reports the current title and transport state.
func (e *Engine) Status(ctx context.Context) (*core.EngineStatus, error) {
	var st core.EngineStatus
	err := e.do(ctx, "status", func(c conn) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		song, err := c.CurrentSong()
		if err != nil {
			return err
		}
		st = core.EngineStatus{
			Title: songTitle(song),
			State: parseState(status["state"]),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Run pings the daemon every keepalive interval until ctx is done.
// A failed ping drops the connection so the next call redials.
func (e *Engine) Run(ctx context.Context) {
	if e.keepalive <= 0 {
		return
	}

	ticker := time.NewTicker(e.keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.ping()
		}
	}
}

// Close drops the connection.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropLocked()
}

func (e *Engine) ping() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.c == nil {
		return
	}
	if err := e.c.Ping(); err != nil {
		e.logger.Warn().Err(err).Msg("keepalive failed, dropping connection")
		_ = e.dropLocked()
	}
}

// do runs fn against a live connection. When fn fails and the connection no
// longer answers a ping, it redials once and retries.
func (e *Engine) do(ctx context.Context, op string, fn func(conn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.connLocked()
	if err != nil {
		return err
	}

	err = fn(c)
	if err == nil {
		return nil
	}
	if c.Ping() == nil {
		// The daemon answered: the command itself was rejected.
		return fmt.Errorf("mpd %s: %w", op, err)
	}

	e.logger.Info().Err(err).Str("op", op).Msg("connection lost, redialing")
	_ = e.dropLocked()

	c, err = e.connLocked()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return fmt.Errorf("mpd %s: %w", op, err)
	}
	return nil
}

func (e *Engine) connLocked() (conn, error) {
	if e.c != nil {
		return e.c, nil
	}
	c, err := e.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrEngineUnavailable, err)
	}
	e.c = c
	e.logger.Debug().Msg("connected")
	return c, nil
}

func (e *Engine) dropLocked() error {
	if e.c == nil {
		return nil
	}
	err := e.c.Close()
	e.c = nil
	return err
}

// songTitle prefers the stream's Title tag and falls back to the station Name.
func songTitle(song mpd.Attrs) string {
	if t := song["Title"]; t != "" {
		return t
	}
	return song["Name"]
}

func parseState(s string) core.EngineState {
	switch s {
	case "play":
		return core.EnginePlaying
	case "stop":
		return core.EngineStopped
	case "pause":
		return core.EnginePaused
	default:
		return core.EngineUnknown
	}
}
