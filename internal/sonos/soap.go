// Package sonos drives a single Sonos renderer over UPnP SOAP as a playback engine.
package sonos

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UPnP service endpoints
	AVTransportEndpoint = "/MediaRenderer/AVTransport/Control"
	DescriptionPath     = "/xml/device_description.xml"

	// UPnP service URNs
	AVTransportService = "urn:schemas-upnp-org:service:AVTransport:1"
)

// Arg is one SOAP action argument. Sonos expects arguments in declaration order.
type Arg struct {
	Name  string
	Value string
}

// SOAPClient makes SOAP requests to one Sonos device.
type SOAPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSOAPClient creates a SOAP client for the device at baseURL (http://host:port).
func NewSOAPClient(baseURL string, timeout time.Duration) *SOAPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SOAPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FaultError is a UPnP error returned in a SOAP fault.
type FaultError struct {
	Action string
	Code   int
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("sonos %s: upnp error %d", e.Action, e.Code)
}

type soapFault struct {
	Body struct {
		Fault struct {
			FaultString string `xml:"faultstring"`
			Detail      struct {
				UPnPError struct {
					ErrorCode int `xml:"errorCode"`
				} `xml:"UPnPError"`
			} `xml:"detail"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

// Call invokes action on service and returns the raw response envelope.
func (c *SOAPClient) Call(ctx context.Context, endpoint, service, action string, args ...Arg) ([]byte, error) {
	body := buildSOAPBody(service, action, args)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", fmt.Sprintf("\"%s#%s\"", service, action))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soap request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fault soapFault
		if xml.Unmarshal(respBody, &fault) == nil && fault.Body.Fault.Detail.UPnPError.ErrorCode != 0 {
			return nil, &FaultError{Action: action, Code: fault.Body.Fault.Detail.UPnPError.ErrorCode}
		}
		return nil, fmt.Errorf("soap error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// Get fetches a plain document from the device, such as its description.
func (c *SOAPClient) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// buildSOAPBody constructs the SOAP envelope.
func buildSOAPBody(service, action string, args []Arg) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	buf.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	buf.WriteString(`<s:Body>`)
	fmt.Fprintf(&buf, `<u:%s xmlns:u="%s">`, action, service)

	for _, a := range args {
		fmt.Fprintf(&buf, "<%s>%s</%s>", a.Name, xmlEscape(a.Value), a.Name)
	}

	fmt.Fprintf(&buf, `</u:%s>`, action)
	buf.WriteString(`</s:Body>`)
	buf.WriteString(`</s:Envelope>`)

	return buf.Bytes()
}

// xmlEscape escapes special XML characters.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
