package sonos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
	perrors "github.com/tessro/paradium/internal/errors"
)

// Renderer implements core.Engine for one Sonos device using its queue.
type Renderer struct {
	client *Client
	logger zerolog.Logger

	mu   sync.Mutex
	uuid string
}

var _ core.Engine = (*Renderer)(nil)

// NewRenderer creates a renderer for the device at host:port.
func NewRenderer(host string, port int, timeout time.Duration, logger zerolog.Logger) *Renderer {
	return &Renderer{
		client: NewClient(host, port, timeout),
		logger: logger.With().Str("component", "sonos").Str("host", host).Logger(),
	}
}

// Stop stops playback.
func (r *Renderer) Stop(ctx context.Context) error {
	return r.wrap("stop", r.client.Stop(ctx))
}

// ClearQueue empties the device queue.
func (r *Renderer) ClearQueue(ctx context.Context) error {
	return r.wrap("clear queue", r.client.RemoveAllTracksFromQueue(ctx))
}

// Enqueue appends a stream URL to the device queue.
func (r *Renderer) Enqueue(ctx context.Context, url string) error {
	return r.wrap("enqueue", r.client.AddURIToQueue(ctx, radioURI(url), ""))
}

// Play switches the transport to the device queue and starts playback.
func (r *Renderer) Play(ctx context.Context) error {
	id, err := r.deviceUUID(ctx)
	if err != nil {
		return r.wrap("describe", err)
	}
	if err := r.client.SetAVTransportURI(ctx, "x-rincon-queue:"+id+"#0", ""); err != nil {
		return r.wrap("play", err)
	}
	return r.wrap("play", r.client.Play(ctx))
}

// Status reports the current title and transport state.
func (r *Renderer) Status(ctx context.Context) (*core.EngineStatus, error) {
	var (
		wg        sync.WaitGroup
		transport *TransportInfo
		position  *PositionInfo
		tErr      error
		pErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		transport, tErr = r.client.GetTransportInfo(ctx)
	}()
	go func() {
		defer wg.Done()
		position, pErr = r.client.GetPositionInfo(ctx)
	}()
	wg.Wait()

	if tErr != nil {
		return nil, r.wrap("get transport info", tErr)
	}
	if pErr != nil {
		return nil, r.wrap("get position info", pErr)
	}

	return &core.EngineStatus{
		Title: parseTitle(position.TrackMetaData),
		State: parseTransportState(transport.CurrentTransportState),
	}, nil
}

// deviceUUID returns the cached RINCON id, fetching it on first use.
func (r *Renderer) deviceUUID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.uuid != "" {
		return r.uuid, nil
	}
	desc, err := r.client.Describe(ctx)
	if err != nil {
		return "", err
	}
	r.uuid = desc.UUID()
	r.logger.Debug().Str("uuid", r.uuid).Str("room", desc.Device.RoomName).Msg("resolved device")
	return r.uuid, nil
}

// wrap tags transport failures as engine-unavailable. UPnP faults mean the
// device answered and are returned as is.
func (r *Renderer) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var fault *FaultError
	if errors.As(err, &fault) {
		return err
	}
	return fmt.Errorf("%w: sonos %s: %v", perrors.ErrEngineUnavailable, op, err)
}

func parseTransportState(s string) core.EngineState {
	switch s {
	case "PLAYING", "TRANSITIONING":
		return core.EnginePlaying
	case "STOPPED", "NO_MEDIA_PRESENT":
		return core.EngineStopped
	case "PAUSED_PLAYBACK":
		return core.EnginePaused
	default:
		return core.EngineUnknown
	}
}
