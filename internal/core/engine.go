package core

import "context"

// EngineState is the transport state reported by a playback engine.
type EngineState string

const (
	EngineStopped EngineState = "stop"
	EnginePlaying EngineState = "play"
	EnginePaused  EngineState = "pause"
	EngineUnknown EngineState = "unknown"
)

// EngineStatus is the subset of engine status the controller needs.
type EngineStatus struct {
	Title string      `json:"title"`
	State EngineState `json:"state"`
}

// Engine defines the external playback engine the controller drives.
type Engine interface {
	Stop(ctx context.Context) error
	ClearQueue(ctx context.Context) error
	Enqueue(ctx context.Context, url string) error
	Play(ctx context.Context) error
	Status(ctx context.Context) (*EngineStatus, error)
}

// Halter powers off the host.
type Halter interface {
	Halt(ctx context.Context) error
}
