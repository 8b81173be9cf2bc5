package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
)

// StationsResponse is the body of GET /api/stations.
type StationsResponse struct {
	Current  core.StationID `json:"current"`
	Stations []core.Station `json:"stations"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Uptime   string `json:"uptime"`
	Stations int    `json:"stations"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	requestLogger(r).Warn().Err(err).Int("status", code).Msg("request failed")
	writeJSON(w, code, ErrorResponse{Error: errorMessage(err), RequestID: RequestIDFrom(r.Context())})
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	stations := s.ctrl.Stations()
	if stations == nil {
		stations = []core.Station{}
	}
	writeJSON(w, http.StatusOK, StationsResponse{
		Current:  s.ctrl.CurrentStation().ID,
		Stations: stations,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Status(r.Context()))
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Dispatch(r.Context(), mux.Vars(r)["command"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Status(r.Context()))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseStationID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.ctrl.Select(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Status(r.Context()))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  s.opts.Version,
		Uptime:   time.Since(s.started).Round(time.Second).String(),
		Stations: len(s.ctrl.Stations()),
	})
}

// compile-time check that the concrete controller satisfies Controller
var _ Controller = (*controller.Controller)(nil)
