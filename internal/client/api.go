// Package client holds the frontend side of the tracker: an HTTP client for
// the expenses API, the explicit UI state, the reducer that is the only way
// that state changes, and the Store that runs the fetch cycle.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kharcha/internal/core"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx API response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// APIClient speaks the expenses REST API at a fixed base URL.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient returns a client for baseURL. A nil httpClient gets a default with a timeout.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the API root the client talks to.
func (c *APIClient) BaseURL() string { return c.baseURL }

func (c *APIClient) List(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []core.Expense{}
	}
	return out, nil
}

func (c *APIClient) Create(ctx context.Context, f Form) error {
	return c.do(ctx, http.MethodPost, "/expenses", f, nil)
}

func (c *APIClient) Update(ctx context.Context, id string, f Form) error {
	return c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), f, nil)
}

func (c *APIClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
