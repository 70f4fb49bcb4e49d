package activecampaign

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/ratelimit"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ListTimeout is the timeout for listing requests, which return
	// larger bodies than single-resource calls.
	ListTimeout = 60 * time.Second

	// headerAPIToken is the ActiveCampaign authentication header.
	headerAPIToken = "Api-Token"
)

// Client is a minimal ActiveCampaign v3 API client covering the note
// listing and deletion endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	gate       *ratelimit.Gate
}

// NewClient creates a client for the given API base URL (e.g.
// "https://account.api-us1.com/api/3"). Every request waits on the
// shared gate so that listing and deletion draw from one global ceiling.
func NewClient(baseURL, apiKey string, gate *ratelimit.Gate) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: ListTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		gate:       gate,
	}
}

// do issues one authenticated request through the admission gate and
// maps the response status onto the domain error sentinels.
// The response body is returned for 2xx responses and must be closed by
// the caller; for any other status the body is drained and closed here.
func (c *Client) do(ctx context.Context, method, url string, timeout time.Duration) (io.ReadCloser, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(reqCtx, method, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(headerAPIToken, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
	}

	io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for connection reuse
	resp.Body.Close()
	cancel()

	return nil, c.classify(resp, url)
}

// classify converts a non-2xx response into a typed error wrapping the
// matching domain sentinel.
func (c *Client) classify(resp *http.Response, url string) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		URL:        url,
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	case resp.StatusCode == http.StatusTooManyRequests:
		if seconds := parseRetryAfter(resp); seconds > 0 {
			c.gate.RecordRetryAfter(seconds)
		}
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, apiErr)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %w", domain.ErrTransient, apiErr)
	default:
		return apiErr
	}
}

// parseRetryAfter reads the Retry-After header in seconds, 0 if absent.
func parseRetryAfter(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(v, "%d", &seconds); err != nil {
		return 0
	}
	return seconds
}

// cancelReadCloser releases the request context when the body is closed.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
