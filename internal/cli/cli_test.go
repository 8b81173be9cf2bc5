package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/config"
	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/power"
	"github.com/tessro/paradium/internal/server"
	"github.com/tessro/paradium/internal/session"
)

type fakeEngine struct {
	mu     sync.Mutex
	queued []string
	state  core.EngineState
}

func (e *fakeEngine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = core.EngineStopped
	return nil
}

func (e *fakeEngine) ClearQueue(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queued = nil
	return nil
}

func (e *fakeEngine) Enqueue(ctx context.Context, url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queued = append(e.queued, url)
	return nil
}

func (e *fakeEngine) Play(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = core.EnginePlaying
	return nil
}

func (e *fakeEngine) Status(ctx context.Context) (*core.EngineStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &core.EngineStatus{Title: "Test Title", State: e.state}, nil
}

func (e *fakeEngine) snapshot() ([]string, core.EngineState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.queued...), e.state
}

// setup starts an appliance on station 1 and writes a config pointing at it.
func setup(t *testing.T) (*fakeEngine, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PARADIUM_CONFIG", "")

	cat := core.NewCatalog([]core.Station{
		{ID: 1, Name: "Radio One", URLs: []string{"http://one.example/a"}},
		{ID: 2, Name: "Radio Two", Website: "http://two.example", URLs: []string{"http://two.example/a", "http://two.example/b"}},
		{ID: 3, Name: "Radio Three", URLs: []string{"http://three.example/a"}},
	})
	sess, _ := session.Open(session.NewFileStore(filepath.Join(dir, "data.xml")), zerolog.Nop())
	engine := &fakeEngine{state: core.EngineStopped}
	ctrl := controller.New(cat, sess, engine, power.Disabled{}, nil, zerolog.Nop())

	ts := httptest.NewServer(server.New(ctrl, server.Options{Version: "test"}, nil, zerolog.Nop()))
	t.Cleanup(ts.Close)

	c := config.Default()
	c.Client.URL = ts.URL
	c.Paths.Home = dir
	c.Paths.VHome = dir
	c.ApplyDefaults()
	path := filepath.Join(dir, "config.toml")
	if err := config.Write(path, c); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return engine, path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, serverURL, jsonOut, verbose = "", "", false, false
		shutdownYes, configInitDefaults, configInitForce = false, false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNextAndPrev(t *testing.T) {
	engine, path := setup(t)

	out, err := run(t, "--config", path, "next")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !strings.Contains(out, "Radio Two") {
		t.Errorf("next output = %q", out)
	}
	if queued, _ := engine.snapshot(); len(queued) != 2 {
		t.Errorf("queued = %v, want both Radio Two streams", queued)
	}

	out, err = run(t, "--config", path, "prev")
	if err != nil {
		t.Fatalf("prev: %v", err)
	}
	if !strings.Contains(out, "Radio One") {
		t.Errorf("prev output = %q", out)
	}
}

func TestPlayStation(t *testing.T) {
	engine, path := setup(t)

	out, err := run(t, "--config", path, "play", "3")
	if err != nil {
		t.Fatalf("play 3: %v", err)
	}
	if !strings.Contains(out, "Radio Three") {
		t.Errorf("output = %q", out)
	}
	if _, state := engine.snapshot(); state != core.EnginePlaying {
		t.Errorf("state = %s", state)
	}

	if _, err := run(t, "--config", path, "play", "9"); err == nil {
		t.Error("expected an error for an unknown station")
	}
	if _, err := run(t, "--config", path, "play", "abc"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}

func TestStop(t *testing.T) {
	engine, path := setup(t)
	if _, err := run(t, "--config", path, "play"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if _, err := run(t, "--config", path, "stop"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, state := engine.snapshot(); state != core.EngineStopped {
		t.Errorf("state = %s", state)
	}
}

func TestShutdownDisabled(t *testing.T) {
	_, path := setup(t)

	_, err := run(t, "--config", path, "shutdown", "--yes")
	if err == nil {
		t.Fatal("expected an error when power control is disabled")
	}
}

func TestStationsJSON(t *testing.T) {
	_, path := setup(t)

	out, err := run(t, "--config", path, "--json", "stations")
	if err != nil {
		t.Fatalf("stations: %v", err)
	}

	var resp server.StationsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Current != 1 || len(resp.Stations) != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestStationsTable(t *testing.T) {
	_, path := setup(t)

	out, err := run(t, "--config", path, "stations")
	if err != nil {
		t.Fatalf("stations: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "●") {
		t.Errorf("current station not marked: %q", lines[1])
	}
}

func TestStatus(t *testing.T) {
	_, path := setup(t)

	out, err := run(t, "--config", path, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"Radio One", "Test Title", "stop"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}

func TestServerFlagOverridesConfig(t *testing.T) {
	_, path := setup(t)

	_, err := run(t, "--config", path, "--server", "http://127.0.0.1:1", "status")
	if err == nil {
		t.Fatal("expected an unreachable server error")
	}
}

func TestConfigInitDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "sub", "paradium.toml")

	out, err := run(t, "--config", path, "config", "init", "--defaults")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}

	c, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if c.Engine.Backend != "mpd" {
		t.Errorf("backend = %q", c.Engine.Backend)
	}

	if _, err := run(t, "--config", path, "config", "init", "--defaults"); err == nil {
		t.Error("expected an error when the file exists")
	}
	if _, err := run(t, "--config", path, "config", "init", "--defaults", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	_, path := setup(t)

	out, err := run(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("output = %q, want %q", out, path)
	}
}

func TestVersion(t *testing.T) {
	_, path := setup(t)

	out, err := run(t, "--config", path, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "paradium ") {
		t.Errorf("output = %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[engine]\nbackend = \"vlc\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--config", path, "status"); err == nil {
		t.Error("expected a validation error")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ab", 1, "a"},
		{"Radiö Ünïcode", 8, "Radiö..."},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
