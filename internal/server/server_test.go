package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/metrics"
	"github.com/tessro/paradium/internal/power"
	"github.com/tessro/paradium/internal/session"
)

type fakeEngine struct {
	mu    sync.Mutex
	calls []string
	title string
	err   error
}

func (e *fakeEngine) rec(c string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.calls = append(e.calls, c)
	return nil
}

func (e *fakeEngine) Stop(context.Context) error                  { return e.rec("stop") }
func (e *fakeEngine) ClearQueue(context.Context) error            { return e.rec("clear") }
func (e *fakeEngine) Enqueue(_ context.Context, url string) error { return e.rec("enqueue " + url) }
func (e *fakeEngine) Play(context.Context) error                  { return e.rec("play") }

func (e *fakeEngine) Status(context.Context) (*core.EngineStatus, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &core.EngineStatus{Title: e.title, State: core.EnginePlaying}, nil
}

type testEnv struct {
	srv    *Server
	engine *fakeEngine
	ctrl   *controller.Controller
	m      *metrics.Metrics
}

func newTestEnv(t *testing.T, cat *core.Catalog, current core.StationID, htdocs string) *testEnv {
	t.Helper()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "data.xml"))
	if err := store.Save(session.State{CurrentStation: current}); err != nil {
		t.Fatal(err)
	}
	sess, _ := session.Open(store, zerolog.Nop())

	env := &testEnv{engine: &fakeEngine{}, m: metrics.New()}
	env.ctrl = controller.New(cat, sess, env.engine, power.Disabled{}, env.m, zerolog.Nop())
	env.srv = New(env.ctrl, Options{HTDocs: htdocs, Version: "test"}, env.m, zerolog.Nop())
	return env
}

func radioCatalog() *core.Catalog {
	return core.NewCatalog([]core.Station{
		{ID: 1, Name: "Paradise", Website: "http://radioparadise.com", URLs: []string{"http://stream-1", "http://stream-2"}},
		{ID: 2, Name: "FIP", URLs: []string{"http://fip"}},
	})
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCommandPage(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 1, "")

	rec := do(t, env.srv, "GET", "/paradium.html?command=next")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "done") {
		t.Errorf("body = %q, want done page", rec.Body.String())
	}
	if got := env.ctrl.CurrentStation().ID; got != 2 {
		t.Errorf("current = %d, want 2", got)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestCommandPageIgnoresHead(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 1, "")

	rec := do(t, env.srv, "HEAD", "/paradium.html?command=next")
	if rec.Code == http.StatusOK {
		t.Errorf("status = %d, want a non-200 for HEAD", rec.Code)
	}
	if got := env.ctrl.CurrentStation().ID; got != 1 {
		t.Errorf("current = %d, want 1", got)
	}
	env.engine.mu.Lock()
	calls := env.engine.calls
	env.engine.mu.Unlock()
	if len(calls) != 0 {
		t.Errorf("engine calls = %v, want none", calls)
	}
}

func TestCommandPageErrors(t *testing.T) {
	tests := []struct {
		name     string
		cat      *core.Catalog
		target   string
		engErr   error
		wantCode int
		wantBody string
	}{
		{"unknown", radioCatalog(), "/paradium.html?command=frobnicate", nil, http.StatusBadRequest, "Unknown command: frobnicate"},
		{"missing", radioCatalog(), "/paradium.html", nil, http.StatusBadRequest, "Unknown command: "},
		{"no stations", core.EmptyCatalog(), "/paradium.html?command=play", nil, http.StatusConflict, "no stations"},
		{"engine down", radioCatalog(), "/paradium.html?command=stop", errors.New("connection refused"), http.StatusBadGateway, "connection refused"},
		{"shutdown disabled", radioCatalog(), "/paradium.html?command=shutdown", nil, http.StatusForbidden, "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.cat, 1, "")
			env.engine.err = tt.engErr

			rec := do(t, env.srv, "GET", tt.target)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestCurrentSong(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 1, "")

	if body := do(t, env.srv, "GET", "/current_song.html").Body.String(); body != "none" {
		t.Errorf("body = %q, want none", body)
	}

	env.engine.title = "Air - La Femme d'Argent"
	if body := do(t, env.srv, "GET", "/current_song.html").Body.String(); body != "Air - La Femme d&#39;Argent" {
		t.Errorf("body = %q", body)
	}
}

func TestCurrentStation(t *testing.T) {
	tests := []struct {
		current core.StationID
		want    string
	}{
		{1, `<a href="http://radioparadise.com">Paradise</a>`},
		{2, "FIP"},
		{99, "Not tuned in"},
	}

	for _, tt := range tests {
		env := newTestEnv(t, radioCatalog(), tt.current, "")
		rec := do(t, env.srv, "GET", "/current_station.html")
		if rec.Body.String() != tt.want {
			t.Errorf("current %d: body = %q, want %q", tt.current, rec.Body.String(), tt.want)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q, want text/html", ct)
		}
	}
}

func TestAPIStations(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 2, "")

	rec := do(t, env.srv, "GET", "/api/stations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp StationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Current != 2 || len(resp.Stations) != 2 || resp.Stations[0].Name != "Paradise" {
		t.Errorf("response = %+v", resp)
	}
}

func TestAPICommandAndSelect(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 1, "")

	rec := do(t, env.srv, "POST", "/api/stations/2/select")
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d body %s", rec.Code, rec.Body.String())
	}
	var st controller.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Station.ID != 2 || !st.Station.Tuned {
		t.Errorf("status station = %+v, want 2", st.Station)
	}

	if rec := do(t, env.srv, "POST", "/api/stations/abc/select"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
	if rec := do(t, env.srv, "POST", "/api/stations/42/select"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}

	rec = do(t, env.srv, "POST", "/api/command/prev")
	if rec.Code != http.StatusOK {
		t.Fatalf("prev status = %d", rec.Code)
	}
	if env.ctrl.CurrentStation().ID != 1 {
		t.Errorf("current = %d, want 1", env.ctrl.CurrentStation().ID)
	}

	rec = do(t, env.srv, "POST", "/api/command/rewind")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown command status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatal(err)
	}
	if er.Error != "Unknown command: rewind" || er.RequestID == "" {
		t.Errorf("error response = %+v", er)
	}

	if rec := do(t, env.srv, "GET", "/api/command/play"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET command status = %d, want 405", rec.Code)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 1, "")

	rec := do(t, env.srv, "GET", "/healthz")
	var h HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Stations != 2 || h.Version != "test" {
		t.Errorf("health = %+v", h)
	}

	do(t, env.srv, "GET", "/paradium.html?command=stop")
	body := do(t, env.srv, "GET", "/metrics").Body.String()
	for _, want := range []string{
		`paradium_commands_total{command="stop",result="ok"} 1`,
		`paradium_http_requests_total{code="200",route="command_page"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>paradium</h1>"), 0644); err != nil {
		t.Fatal(err)
	}
	env := newTestEnv(t, radioCatalog(), 1, dir)

	rec := do(t, env.srv, "GET", "/index.html")
	if rec.Code != http.StatusMovedPermanently && !strings.Contains(rec.Body.String(), "paradium") {
		t.Errorf("index.html: status %d body %q", rec.Code, rec.Body.String())
	}
	if rec := do(t, env.srv, "GET", "/"); !strings.Contains(rec.Body.String(), "<h1>paradium</h1>") {
		t.Errorf("root body = %q", rec.Body.String())
	}
	if rec := do(t, env.srv, "GET", "/missing.css"); rec.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", rec.Code)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	env := newTestEnv(t, radioCatalog(), 1, "")

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}
