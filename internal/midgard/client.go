// Package midgard fetches pages of raw history data from the upstream
// Midgard API. One request per call; the walker owns cursor advancement
// and the scheduler owns retry cadence, so the client never retries.
package midgard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL   = "https://midgard.ninerealms.com/v2"
	DefaultTimeout   = 30 * time.Second
	DefaultPageCount = 400 // upstream maximum per page
)

// Client fetches raw history pages over HTTPS.
type Client struct {
	baseURL   string
	client    *http.Client
	pageCount int
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithPageCount sets the per-page interval count requested from upstream.
func WithPageCount(n int) Option {
	return func(c *Client) {
		c.pageCount = n
	}
}

// NewClient creates a new Midgard API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		client:    &http.Client{Timeout: DefaultTimeout},
		pageCount: DefaultPageCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TransportError reports an unreachable upstream or a non-success status.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("midgard request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("midgard request %s: unexpected status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not match the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("midgard decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DepthHistory fetches one page of depth/price history for a pool.
func (c *Client) DepthHistory(ctx context.Context, pool, interval string, from int64) (*DepthPage, error) {
	u := c.historyURL("depths/"+url.PathEscape(pool), interval, from)
	var page DepthPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SwapsHistory fetches one page of swaps history.
func (c *Client) SwapsHistory(ctx context.Context, interval string, from int64) (*SwapsPage, error) {
	u := c.historyURL("swaps", interval, from)
	var page SwapsPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// EarningsHistory fetches one page of earnings history.
func (c *Client) EarningsHistory(ctx context.Context, interval string, from int64) (*EarningsPage, error) {
	u := c.historyURL("earnings", interval, from)
	var page EarningsPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RunePoolHistory fetches one page of rune-pool membership history.
func (c *Client) RunePoolHistory(ctx context.Context, interval string, from int64) (*RunePoolPage, error) {
	u := c.historyURL("runepool", interval, from)
	var page RunePoolPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// historyURL builds the paged request URL for one history endpoint.
func (c *Client) historyURL(path, interval string, from int64) string {
	return fmt.Sprintf("%s/history/%s?interval=%s&from=%d&count=%d",
		c.baseURL, path, url.QueryEscape(interval), from, c.pageCount)
}

// getJSON performs one GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, u string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{URL: u, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: u, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &TransportError{URL: u, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}

// EndTimeUnix parses the meta block's reported end time, the cursor for
// the next page.
func (m PageMeta) EndTimeUnix() (int64, error) {
	ts, err := strconv.ParseInt(m.EndTime, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse meta endTime %q: %w", m.EndTime, err)
	}
	return ts, nil
}
