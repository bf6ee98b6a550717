package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Transport invokes a named remote operation with positional arguments and
// an optional header-level option bag, returning the raw JSON result. The
// manager depends on this interface only, so it can be exercised without a
// live endpoint.
type Transport interface {
	Call(service, method string, args []any, opts *CallOptions) (json.RawMessage, error)
}

// CallOptions are header-level query controls passed through to the remote
// service unmodified.
type CallOptions struct {
	Mask   string
	Limit  int
	Offset int
}

// Error is a fault reported by the remote service. It is surfaced to
// callers unchanged; nothing above the transport catches or translates it.
type Error struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client is a REST transport for the CDN marketplace API. Methods map to
// {Endpoint}/{Service}/{method}.json with HTTP basic auth; positional
// arguments travel in a {"parameters": [...]} body. Every call is exactly
// one round trip: no retry, no backoff.
type Client struct {
	Endpoint   string
	Username   string
	APIKey     string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c *Client) Call(service, method string, args []any, opts *CallOptions) (json.RawMessage, error) {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	endpoint := strings.TrimRight(c.Endpoint, "/") + "/" + service + "/" + method + ".json"
	if q := encodeOptions(opts); q != "" {
		endpoint += "?" + q
	}

	httpMethod := http.MethodGet
	var body io.Reader
	if len(args) > 0 {
		payload, err := json.Marshal(map[string]any{"parameters": args})
		if err != nil {
			return nil, err
		}
		httpMethod = http.MethodPost
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(httpMethod, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.Username, c.APIKey)

	if c.Logger != nil {
		c.Logger.Debug("api request", "method", httpMethod, "service", service, "operation", method)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return nil, apiErr
	}

	if c.Logger != nil {
		c.Logger.Debug("api response", "service", service, "operation", method, "bytes", len(data))
	}
	return json.RawMessage(data), nil
}

func encodeOptions(opts *CallOptions) string {
	if opts == nil {
		return ""
	}
	q := url.Values{}
	if opts.Mask != "" {
		q.Set("objectMask", opts.Mask)
	}
	if opts.Limit > 0 {
		q.Set("resultLimit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("resultOffset", strconv.Itoa(opts.Offset))
	}
	return q.Encode()
}
