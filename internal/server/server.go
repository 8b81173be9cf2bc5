// Package server exposes the controller over HTTP: the legacy page endpoints
// the appliance web UI polls, a JSON API, health and metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/metrics"
)

// Controller is what the handlers need from *controller.Controller.
type Controller interface {
	Dispatch(ctx context.Context, raw string) error
	Select(ctx context.Context, id core.StationID) error
	CurrentStation() controller.StationDescriptor
	NowPlaying(ctx context.Context) (string, error)
	Status(ctx context.Context) controller.Status
	Stations() []core.Station
}

// Options configures a Server.
type Options struct {
	// HTDocs is served for every path no route claims. Empty disables it.
	HTDocs  string
	Version string
}

// Server routes HTTP requests to the controller.
type Server struct {
	router  *mux.Router
	ctrl    Controller
	metrics *metrics.Metrics
	logger  zerolog.Logger
	opts    Options
	started time.Time
}

// New creates a server and registers its routes. m may be nil.
func New(ctrl Controller, opts Options, m *metrics.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		ctrl:    ctrl,
		metrics: m,
		logger:  logger.With().Str("component", "http").Logger(),
		opts:    opts,
		started: time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestID, s.recoverer, s.instrument)

	// Pages polled by the appliance web UI
	// Commands run on GET only; HEAD must not change the station or halt the host.
	s.router.HandleFunc("/paradium.html", s.handleCommandPage).Methods("GET").Name("command_page")
	s.router.HandleFunc("/current_song.html", s.handleCurrentSong).Methods("GET", "HEAD").Name("current_song")
	s.router.HandleFunc("/current_station.html", s.handleCurrentStation).Methods("GET", "HEAD").Name("current_station")

	// JSON API
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stations", s.handleStations).Methods("GET").Name("api_stations")
	api.HandleFunc("/stations/{id}/select", s.handleSelect).Methods("POST").Name("api_select")
	api.HandleFunc("/status", s.handleStatus).Methods("GET").Name("api_status")
	api.HandleFunc("/command/{command}", s.handleCommand).Methods("POST").Name("api_command")

	s.router.HandleFunc("/healthz", s.handleHealthz).Methods("GET", "HEAD").Name("healthz")
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET").Name("metrics")
	}

	if s.opts.HTDocs != "" {
		s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.opts.HTDocs))).Name("static")
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
