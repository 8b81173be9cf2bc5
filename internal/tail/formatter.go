package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. An invalid template is an error.
func WithTemplate(tmpl string) (FormatterOption, error) {
	if tmpl == "" {
		return func(*Formatter) {}, nil
	}
	t, err := template.New("format").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("invalid format template: %w", err)
	}
	return func(f *Formatter) {
		f.template = t
	}, nil
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, describe(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}
	if e.Current != nil {
		data.Title = e.Current.Title
		data.Station = e.Current.Station.String()
		data.StationID = int(e.Current.Station.ID)
		data.State = string(e.Current.State)
	}
	if e.Played > 0 {
		data.Played = played(e)
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Station   string
	StationID int
	State     string
	Played    string
}

// describe returns a human-readable description of the event.
func describe(e Event) string {
	switch e.Type {
	case EventStationChange:
		if e.Current != nil {
			if !e.Current.Station.Tuned {
				return e.Current.Station.String()
			}
			return fmt.Sprintf("Station: %s (#%d)", e.Current.Station.Name, e.Current.Station.ID)
		}
		return "Station changed"

	case EventTitleChange:
		if e.Current == nil {
			return "Title changed"
		}
		s := "Now playing: " + e.Current.Title
		if e.Played > 0 && e.Previous != nil && hasTitle(e.Previous) {
			s += fmt.Sprintf(" (after %q, %s)", e.Previous.Title, played(e))
		}
		return s

	case EventStop:
		return "Stopped"

	case EventResume:
		return "Playing"

	case EventEngineDown:
		if e.Current != nil && e.Current.EngineError != "" {
			return "Engine unavailable: " + e.Current.EngineError
		}
		return "Engine unavailable"

	case EventEngineUp:
		return "Engine back online"

	default:
		return "Unknown event"
	}
}

// played renders how long the previous title ran, e.g. "3 minutes".
func played(e Event) string {
	return strings.TrimSpace(humanize.RelTime(e.Timestamp.Add(-e.Played), e.Timestamp, "", ""))
}

func eventEmoji(t EventType) string {
	switch t {
	case EventStationChange:
		return "📻"
	case EventTitleChange:
		return "🎵"
	case EventStop:
		return "⏹️"
	case EventResume:
		return "▶️"
	case EventEngineDown:
		return "⚠️"
	case EventEngineUp:
		return "✅"
	default:
		return "❓"
	}
}

func eventTypeName(t EventType) string {
	switch t {
	case EventStationChange:
		return "station_change"
	case EventTitleChange:
		return "title_change"
	case EventStop:
		return "stop"
	case EventResume:
		return "resume"
	case EventEngineDown:
		return "engine_down"
	case EventEngineUp:
		return "engine_up"
	default:
		return "unknown"
	}
}
