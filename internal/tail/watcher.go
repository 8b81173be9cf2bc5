// Package tail follows a paradium server and reports station and title
// changes as they happen.
package tail

import (
	"context"
	"sync"
	"time"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
)

// EventType represents the type of appliance event.
type EventType int

const (
	EventStationChange EventType = iota
	EventTitleChange
	EventStop
	EventResume
	EventEngineDown
	EventEngineUp
)

// Event represents an observed status change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *controller.Status
	Current   *controller.Status
	// Played is how long the previous title was on air, when known.
	Played time.Duration
}

// StatusSource reports the appliance status. *remote.Client satisfies it.
type StatusSource interface {
	Status(ctx context.Context) (*controller.Status, error)
}

// Watcher polls a status source for changes and emits events.
type Watcher struct {
	source   StatusSource
	interval time.Duration
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewWatcher creates a new status watcher.
func NewWatcher(source StatusSource, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		source:   source,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Events returns the channel of events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling. It closes the events channel when it returns.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	d := &differ{now: w.now}
	w.emit(d.observe(w.poll(ctx)))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			w.emit(d.observe(w.poll(ctx)))
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *Watcher) poll(ctx context.Context) *controller.Status {
	st, err := w.source.Status(ctx)
	if err != nil {
		// Unreachable server looks the same as an unreachable engine.
		return &controller.Status{State: core.EngineUnknown, EngineError: err.Error()}
	}
	return st
}

func (w *Watcher) emit(events []Event) {
	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
}

// differ remembers the last status and when the current title started.
type differ struct {
	prev       *controller.Status
	titleSince time.Time
	now        func() time.Time
}

func (d *differ) observe(curr *controller.Status) []Event {
	now := d.now()
	events := diffStatus(d.prev, curr, now)
	for i := range events {
		if events[i].Type == EventTitleChange && !d.titleSince.IsZero() {
			events[i].Played = now.Sub(d.titleSince)
		}
	}
	if d.prev == nil || d.prev.Title != curr.Title {
		d.titleSince = now
	}
	d.prev = curr
	return events
}

// diffStatus compares two statuses and returns detected events.
func diffStatus(prev, curr *controller.Status, now time.Time) []Event {
	if curr == nil {
		return nil
	}

	ev := func(t EventType) Event {
		return Event{Type: t, Timestamp: now, Previous: prev, Current: curr}
	}

	// First poll: report where we are
	if prev == nil {
		if curr.EngineError != "" {
			return []Event{ev(EventEngineDown)}
		}
		events := []Event{ev(EventStationChange)}
		if hasTitle(curr) {
			events = append(events, ev(EventTitleChange))
		}
		return events
	}

	// Engine availability
	if prev.EngineError == "" && curr.EngineError != "" {
		return []Event{ev(EventEngineDown)}
	}
	if curr.EngineError != "" {
		return nil
	}

	var events []Event
	if prev.EngineError != "" {
		events = append(events, ev(EventEngineUp))
	}

	if prev.Station.ID != curr.Station.ID || prev.Station.Tuned != curr.Station.Tuned {
		events = append(events, ev(EventStationChange))
	}

	if prev.Title != curr.Title && hasTitle(curr) {
		events = append(events, ev(EventTitleChange))
	}

	if prev.State == core.EnginePlaying && curr.State != core.EnginePlaying {
		events = append(events, ev(EventStop))
	} else if prev.State != core.EnginePlaying && curr.State == core.EnginePlaying && prev.EngineError == "" {
		events = append(events, ev(EventResume))
	}

	return events
}

func hasTitle(s *controller.Status) bool {
	return s.Title != "" && s.Title != controller.NothingPlaying
}
