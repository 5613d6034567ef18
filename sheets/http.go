package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/St3r30X/any-bot/grid"
)

// Client talks to a spreadsheet gateway over HTTP/JSON.
//
// The gateway contract is small: GET {base}/values returns the full roster
// range as {"values": [[...]]}; PUT {base}/values/{addr} with
// {"value": "...", "input": "user"} writes one cell with user-entered
// semantics.
type Client struct {
	base   string
	client *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. Default: 15s.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.client.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.client = h }
}

// NewClient creates a gateway client for the given base URL.
func NewClient(base string, opts ...ClientOption) *Client {
	c := &Client{
		base:   base,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type valuesResponse struct {
	Values [][]any `json:"values"`
	Error  string  `json:"error,omitempty"`
}

func (c *Client) Read(ctx context.Context) (grid.Grid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/values", nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: read: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: read: status %d", resp.StatusCode)
	}

	var body valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("sheets: decode values: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("sheets: read: %s", body.Error)
	}
	return grid.Grid(body.Values), nil
}

func (c *Client) WriteCell(ctx context.Context, addr, value string) error {
	payload, err := json.Marshal(map[string]string{
		"value": value,
		"input": "user",
	})
	if err != nil {
		return fmt.Errorf("sheets: encode write: %w", err)
	}

	target := c.base + "/values/" + url.PathEscape(addr)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sheets: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: write %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sheets: write %s: status %d", addr, resp.StatusCode)
	}
	return nil
}
