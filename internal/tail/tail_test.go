package tail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
)

func tuned(id core.StationID, name, title string, state core.EngineState) *controller.Status {
	return &controller.Status{
		Station: controller.StationDescriptor{Tuned: true, ID: id, Name: name},
		Title:   title,
		State:   state,
	}
}

func types(events []Event) []EventType {
	var out []EventType
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestDiffStatus(t *testing.T) {
	now := time.Now()
	down := &controller.Status{State: core.EngineUnknown, EngineError: "refused"}

	tests := []struct {
		name string
		prev *controller.Status
		curr *controller.Status
		want []EventType
	}{
		{"first poll with title", nil, tuned(1, "A", "Song", core.EnginePlaying), []EventType{EventStationChange, EventTitleChange}},
		{"first poll silent", nil, tuned(1, "A", "none", core.EngineStopped), []EventType{EventStationChange}},
		{"first poll engine down", nil, down, []EventType{EventEngineDown}},
		{"no change", tuned(1, "A", "x", core.EnginePlaying), tuned(1, "A", "x", core.EnginePlaying), nil},
		{"station change", tuned(1, "A", "x", core.EnginePlaying), tuned(2, "B", "x", core.EnginePlaying), []EventType{EventStationChange}},
		{"title change", tuned(1, "A", "x", core.EnginePlaying), tuned(1, "A", "y", core.EnginePlaying), []EventType{EventTitleChange}},
		{"title cleared", tuned(1, "A", "x", core.EnginePlaying), tuned(1, "A", "none", core.EnginePlaying), nil},
		{"stop", tuned(1, "A", "x", core.EnginePlaying), tuned(1, "A", "x", core.EngineStopped), []EventType{EventStop}},
		{"resume", tuned(1, "A", "x", core.EngineStopped), tuned(1, "A", "x", core.EnginePlaying), []EventType{EventResume}},
		{"engine down", tuned(1, "A", "x", core.EnginePlaying), down, []EventType{EventEngineDown}},
		{"still down", down, down, nil},
		{"engine up", down, tuned(1, "A", "x", core.EnginePlaying), []EventType{EventEngineUp, EventStationChange, EventTitleChange}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(diffStatus(tt.prev, tt.curr, now))
			if len(got) != len(tt.want) {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("events[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDifferTracksPlayedDuration(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := &differ{now: func() time.Time { return clock }}

	d.observe(tuned(1, "A", "first", core.EnginePlaying))
	clock = clock.Add(3 * time.Minute)
	events := d.observe(tuned(1, "A", "second", core.EnginePlaying))

	if len(events) != 1 || events[0].Type != EventTitleChange {
		t.Fatalf("events = %v", types(events))
	}
	if events[0].Played != 3*time.Minute {
		t.Errorf("Played = %v, want 3m", events[0].Played)
	}

	line := NewFormatter(WithEmoji(false)).Format(events[0])
	want := `Now playing: second (after "first", 3 minutes)`
	if line != want {
		t.Errorf("Format() = %q, want %q", line, want)
	}
}

func TestFormatter(t *testing.T) {
	ts := time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)
	station := Event{Type: EventStationChange, Timestamp: ts, Current: tuned(4, "FIP", "", core.EnginePlaying)}

	if got := NewFormatter(WithEmoji(false)).Format(station); got != "Station: FIP (#4)" {
		t.Errorf("Format() = %q", got)
	}
	if got := NewFormatter(WithTimestamp(true)).Format(station); got != "09:30:00 📻 Station: FIP (#4)" {
		t.Errorf("Format() with timestamp = %q", got)
	}

	untuned := Event{Type: EventStationChange, Current: &controller.Status{Station: controller.StationDescriptor{ID: 99}}}
	if got := NewFormatter(WithEmoji(false)).Format(untuned); got != controller.NotTunedIn {
		t.Errorf("Format(untuned) = %q", got)
	}

	opt, err := WithTemplate("{{.Type}} {{.StationID}} {{.Station}}")
	if err != nil {
		t.Fatal(err)
	}
	if got := NewFormatter(opt).Format(station); got != "station_change 4 FIP" {
		t.Errorf("template Format() = %q", got)
	}

	if _, err := WithTemplate("{{.Broken"); err == nil {
		t.Error("WithTemplate() error = nil for invalid template")
	}
}

// scriptedSource replays statuses then repeats the last one.
type scriptedSource struct {
	mu    sync.Mutex
	steps []*controller.Status
	errs  []error
	i     int
}

func (s *scriptedSource) Status(context.Context) (*controller.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.i
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	} else {
		s.i++
	}
	return s.steps[i], s.errs[i]
}

func TestWatcherStopTwice(t *testing.T) {
	src := &scriptedSource{
		steps: []*controller.Status{tuned(1, "A", "one", core.EnginePlaying)},
		errs:  []error{nil},
	}
	w := NewWatcher(src, time.Millisecond)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(context.Background()) }()

	w.Stop()
	w.Stop()

	for range w.Events() {
	}
	if err := <-errCh; err != nil {
		t.Errorf("Start() error = %v, want nil", err)
	}
}

func TestWatcherEmitsEvents(t *testing.T) {
	src := &scriptedSource{
		steps: []*controller.Status{
			tuned(1, "A", "one", core.EnginePlaying),
			nil,
			tuned(2, "B", "two", core.EnginePlaying),
		},
		errs: []error{nil, errors.New("connection refused"), nil},
	}
	w := NewWatcher(src, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	var got []string
	for e := range w.Events() {
		got = append(got, eventTypeName(e.Type))
		if e.Type == EventTitleChange && e.Current.Title == "two" {
			w.Stop()
		}
	}

	want := "station_change,title_change,engine_down,engine_up,station_change,title_change"
	if strings.Join(got, ",") != want {
		t.Errorf("events = %s, want %s", strings.Join(got, ","), want)
	}
}
