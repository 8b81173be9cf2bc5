package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoStations        = errors.New("no stations available")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrInvalidStationID  = errors.New("invalid station id")
	ErrStationNotFound   = errors.New("station not found")
	ErrEngineUnavailable = errors.New("playback engine unavailable")
	ErrServerUnreachable = errors.New("paradium server unreachable")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// UnknownCommandError reports a command string outside the dispatch table.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %q", e.Command)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// ParadiumError wraps an error with a user-friendly suggestion.
type ParadiumError struct {
	Err        error
	Suggestion string
}

func (e *ParadiumError) Error() string {
	return e.Err.Error()
}

func (e *ParadiumError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ParadiumError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var pErr *ParadiumError
	if errors.As(err, &pErr) && pErr.Suggestion != "" {
		return pErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrNoStations) {
		return "Check that the stations file exists and lists at least one station"
	}

	if errors.Is(err, ErrUnknownCommand) {
		return "Valid commands are play, prev, next, stop and shutdown"
	}

	if errors.Is(err, ErrInvalidStationID) || errors.Is(err, ErrStationNotFound) {
		return "Run 'paradium stations' to see the known station ids"
	}

	if errors.Is(err, ErrEngineUnavailable) || strings.Contains(errStr, "mpd") {
		return "Make sure the playback engine is running and reachable (see [mpd] in the config)"
	}

	if errors.Is(err, ErrServerUnreachable) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "timeout") {
		return "Start the appliance with 'paradium serve' or point --server at it"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'paradium config init' to write a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// Err joins all collected errors, or returns nil.
func (p *PartialResult[T]) Err() error {
	return errors.Join(p.Errors...)
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
