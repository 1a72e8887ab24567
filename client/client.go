// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kahatra/tribe-widget/models"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 10 * time.Second

// Client reads plan and request snapshots from a running server. It is safe
// for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// GetPlanSnapshot fetches GET /plans/{slug}.
func (c *Client) GetPlanSnapshot(ctx context.Context, slug string) (models.PlanSnapshot, error) {
	var snap models.PlanSnapshot
	err := c.get(ctx, "plan", slug, "/plans/"+url.PathEscape(slug), &snap)
	return snap, err
}

// GetRequestSnapshot fetches GET /requests/{slug}.
func (c *Client) GetRequestSnapshot(ctx context.Context, slug string) (models.RequestSnapshot, error) {
	var snap models.RequestSnapshot
	err := c.get(ctx, "request", slug, "/requests/"+url.PathEscape(slug), &snap)
	return snap, err
}

func (c *Client) get(ctx context.Context, kind, key, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, kind, key)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// statusError turns an API error body back into the service error types.
func statusError(resp *http.Response, kind, key string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e models.ErrorResponse
	_ = json.Unmarshal(body, &e)
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &models.NotFoundError{Kind: kind, Key: key}
	case http.StatusBadRequest:
		return &models.ValidationError{Message: msg}
	case http.StatusForbidden:
		return &models.AuthorizationError{Message: msg}
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
}
