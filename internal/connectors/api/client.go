package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/contentbridge-cli/internal/logger"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// Client performs single page fetches against the remote API.
type Client struct {
	http *resty.Client
}

// NewClient creates a fetch client with the given request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().SetTimeout(timeout)
	return &Client{http: c}
}

// NewClientWithResty wraps a caller-supplied resty client. Useful for
// tests that need a custom transport.
func NewClientWithResty(http *resty.Client) *Client {
	return &Client{http: http}
}

// FetchJSON performs one request and decodes the JSON response body.
// A timed-out request or a non-2xx status is a hard failure; there is
// no automatic retry.
func (c *Client) FetchJSON(ctx context.Context, req *PageRequest) (any, error) {
	logger.Debug("fetching %s %s", req.Method, req.URL)

	r := c.http.R().SetContext(ctx).SetHeaders(req.Headers)
	if req.HasBody {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode(), URL: req.URL}
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, nil
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return data, nil
}
