package sonos

import (
	"context"
	"encoding/xml"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

var instance = Arg{Name: "InstanceID", Value: "0"}

// Client exposes the AVTransport actions of one Sonos device.
type Client struct {
	soap *SOAPClient
}

// NewClient creates a client for the device at host:port.
func NewClient(host string, port int, timeout time.Duration) *Client {
	base := "http://" + net.JoinHostPort(host, strconv.Itoa(port))
	return &Client{soap: NewSOAPClient(base, timeout)}
}

// DeviceDescription is the part of device_description.xml the client uses.
type DeviceDescription struct {
	Device struct {
		UDN          string `xml:"UDN"`
		RoomName     string `xml:"roomName"`
		FriendlyName string `xml:"friendlyName"`
		ModelName    string `xml:"modelName"`
	} `xml:"device"`
}

// UUID returns the RINCON id without the "uuid:" prefix.
func (d *DeviceDescription) UUID() string {
	return strings.TrimPrefix(d.Device.UDN, "uuid:")
}

// Describe fetches the device description document.
func (c *Client) Describe(ctx context.Context) (*DeviceDescription, error) {
	data, err := c.soap.Get(ctx, DescriptionPath)
	if err != nil {
		return nil, err
	}

	var desc DeviceDescription
	if err := xml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse device description: %w", err)
	}
	if desc.UUID() == "" {
		return nil, fmt.Errorf("device description has no UDN")
	}
	return &desc, nil
}

// TransportInfo contains playback transport state.
type TransportInfo struct {
	CurrentTransportState  string
	CurrentTransportStatus string
	CurrentSpeed           string
}

// GetTransportInfo retrieves the current transport state.
func (c *Client) GetTransportInfo(ctx context.Context) (*TransportInfo, error) {
	resp, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "GetTransportInfo", instance)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Body struct {
			Response TransportInfo `xml:"GetTransportInfoResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &envelope.Body.Response, nil
}

// PositionInfo contains track position information.
type PositionInfo struct {
	Track         int    `xml:"Track"`
	TrackDuration string `xml:"TrackDuration"`
	TrackMetaData string `xml:"TrackMetaData"`
	TrackURI      string `xml:"TrackURI"`
	RelTime       string `xml:"RelTime"`
}

// GetPositionInfo retrieves the current track position.
func (c *Client) GetPositionInfo(ctx context.Context) (*PositionInfo, error) {
	resp, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "GetPositionInfo", instance)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Body struct {
			Response PositionInfo `xml:"GetPositionInfoResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &envelope.Body.Response, nil
}

// Play starts playback.
func (c *Client) Play(ctx context.Context) error {
	_, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "Play", instance, Arg{"Speed", "1"})
	return err
}

// Stop stops playback.
func (c *Client) Stop(ctx context.Context) error {
	_, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "Stop", instance)
	return err
}

// RemoveAllTracksFromQueue empties the device queue.
func (c *Client) RemoveAllTracksFromQueue(ctx context.Context) error {
	_, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "RemoveAllTracksFromQueue", instance)
	return err
}

// AddURIToQueue appends a URI to the device queue.
func (c *Client) AddURIToQueue(ctx context.Context, uri, metadata string) error {
	_, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "AddURIToQueue",
		instance,
		Arg{"EnqueuedURI", uri},
		Arg{"EnqueuedURIMetaData", metadata},
		Arg{"DesiredFirstTrackNumberEnqueued", "0"},
		Arg{"EnqueueAsNext", "0"},
	)
	return err
}

// SetAVTransportURI points the transport at uri.
func (c *Client) SetAVTransportURI(ctx context.Context, uri, metadata string) error {
	_, err := c.soap.Call(ctx, AVTransportEndpoint, AVTransportService, "SetAVTransportURI",
		instance,
		Arg{"CurrentURI", uri},
		Arg{"CurrentURIMetaData", metadata},
	)
	if err != nil {
		return fmt.Errorf("set transport URI: %w", err)
	}
	return nil
}
