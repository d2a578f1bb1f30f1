package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// ErrNotFound marks a remote lookup for an id the store does not have.
var ErrNotFound = errors.New("candidate not found")

// delayMillis is the process-wide artificial latency applied before every
// request. Used to exercise loading-state behavior in callers; defaults to 0.
var delayMillis atomic.Int64

// SetDelay sets the artificial delay applied before each subsequent call.
func SetDelay(d time.Duration) {
	delayMillis.Store(d.Milliseconds())
}

// Delay returns the current artificial delay setting.
func Delay() time.Duration {
	return time.Duration(delayMillis.Load()) * time.Millisecond
}

// Client talks to the remote candidate store. It holds no record state; every
// method issues exactly one HTTP exchange. No retries, no request dedup.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the store at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchAll retrieves every candidate in the store.
func (c *Client) FetchAll(ctx context.Context) ([]candidate.Candidate, error) {
	var out []candidate.Candidate
	if err := c.do(ctx, http.MethodGet, "/candidates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchByID retrieves a single candidate. Any failure, including transport
// errors, must be treated by callers as "not found"; a 404 additionally
// matches ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id int64) (candidate.Candidate, error) {
	var out candidate.Candidate
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/candidates/%d", id), nil, &out); err != nil {
		return candidate.Candidate{}, err
	}
	return out, nil
}

// Create submits a new candidate (its ID field is ignored) and returns the
// stored record with the server-assigned id.
func (c *Client) Create(ctx context.Context, cand candidate.Candidate) (candidate.Candidate, error) {
	var out candidate.Candidate
	if err := c.do(ctx, http.MethodPost, "/candidates", cand, &out); err != nil {
		return candidate.Candidate{}, err
	}
	return out, nil
}

// Update applies a partial update server-side and returns the full updated
// record as the server stored it.
func (c *Client) Update(ctx context.Context, id int64, patch candidate.Patch) (candidate.Candidate, error) {
	var out candidate.Candidate
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/candidates/%d", id), patch, &out); err != nil {
		return candidate.Candidate{}, err
	}
	return out, nil
}

// Delete removes a candidate from the store.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/candidates/%d", id), nil, nil)
}

// SearchByText asks the store for candidates whose name, email or position
// contain the query.
func (c *Client) SearchByText(ctx context.Context, query string) ([]candidate.Candidate, error) {
	var out []candidate.Candidate
	path := "/candidates?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchByStatus asks the store for candidates with the exact status. The value
// is forwarded verbatim, including the "all" sentinel; what "all" means is the
// store's business, not this layer's.
func (c *Client) FetchByStatus(ctx context.Context, status candidate.Status) ([]candidate.Candidate, error) {
	var out []candidate.Candidate
	path := "/candidates?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do runs one request/response cycle: optional artificial delay, encode,
// send, decode. out may be nil for responses without a body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.sleep(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, path, errorMessage(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// sleep blocks for the configured artificial delay, honoring ctx cancellation.
func (c *Client) sleep(ctx context.Context) error {
	d := Delay()
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// errorMessage pulls the store's {"error": "..."} body when present.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status, payload.Error)
	}
	return resp.Status
}
