package server

import (
	"html"
	"io"
	"net/http"
)

const donePage = "<!DOCTYPE html><html><head></head><body>done</body></html>"

func writeHTML(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

// handleCommandPage runs ?command= and answers with a tiny page the UI ignores.
func (s *Server) handleCommandPage(w http.ResponseWriter, r *http.Request) {
	cmd := r.URL.Query().Get("command")
	logger := requestLogger(r)
	logger.Info().Str("command", cmd).Msg("executing command")

	if err := s.ctrl.Dispatch(r.Context(), cmd); err != nil {
		code := statusFor(err)
		logger.Warn().Err(err).Int("status", code).Msg("command failed")
		writeHTML(w, code, html.EscapeString(errorMessage(err)))
		return
	}
	writeHTML(w, http.StatusOK, donePage)
}

func (s *Server) handleCurrentSong(w http.ResponseWriter, r *http.Request) {
	title, err := s.ctrl.NowPlaying(r.Context())
	if err != nil {
		requestLogger(r).Warn().Err(err).Msg("now playing unavailable")
		writeHTML(w, statusFor(err), html.EscapeString(errorMessage(err)))
		return
	}
	writeHTML(w, http.StatusOK, html.EscapeString(title))
}

func (s *Server) handleCurrentStation(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, s.ctrl.CurrentStation().HTML())
}
