// Package remote talks to a running paradium server over its JSON API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	perrors "github.com/tessro/paradium/internal/errors"
	"github.com/tessro/paradium/internal/server"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s (status %d, request %s)", e.Message, e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Unwrap maps well-known statuses back onto the shared sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusConflict:
		return perrors.ErrNoStations
	case http.StatusNotFound:
		return perrors.ErrStationNotFound
	case http.StatusBadRequest:
		if strings.HasPrefix(e.Message, "Unknown command") {
			return perrors.ErrUnknownCommand
		}
		return perrors.ErrInvalidStationID
	case http.StatusBadGateway:
		return perrors.ErrEngineUnavailable
	}
	return nil
}

// Client calls the paradium JSON API.
type Client struct {
	base       *url.URL
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		base:       u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// URL returns the server base URL.
func (c *Client) URL() string {
	return c.base.String()
}

// Stations lists the catalog and the current selection.
func (c *Client) Stations(ctx context.Context) (*server.StationsResponse, error) {
	var resp server.StationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/stations", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status returns the appliance status.
func (c *Client) Status(ctx context.Context) (*controller.Status, error) {
	var st controller.Status
	if err := c.do(ctx, http.MethodGet, "/api/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Command runs a transport command and returns the resulting status.
func (c *Client) Command(ctx context.Context, cmd string) (*controller.Status, error) {
	var st controller.Status
	if err := c.do(ctx, http.MethodPost, "/api/command/"+url.PathEscape(cmd), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Select tunes to station id and returns the resulting status.
func (c *Client) Select(ctx context.Context, id core.StationID) (*controller.Status, error) {
	var st controller.Status
	path := "/api/stations/" + strconv.Itoa(int(id)) + "/select"
	if err := c.do(ctx, http.MethodPost, path, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Health checks the server is up.
func (c *Client) Health(ctx context.Context) (*server.HealthResponse, error) {
	var h server.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/healthz", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er server.ErrorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != "" {
			apiErr.Message = er.Error
			apiErr.RequestID = er.RequestID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsUnreachable reports whether err means the server could not be contacted.
func IsUnreachable(err error) bool {
	return errors.Is(err, perrors.ErrServerUnreachable)
}
