// Package webhook is the client for the n8n automation webhooks that do
// lead listing, AI generation, campaign delivery and execution logging.
// Calls are never retried.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/unclebandit/marketing-ops-backend/internal/config"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
)

const serviceName = "n8n"

// defaultMaxResponseBytes caps a response body when the config sets no limit.
const defaultMaxResponseBytes = 16 << 20

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	cfg        config.WebhookConfig
	httpClient HTTPDoer
}

// NewClient builds a client. Deadlines come from the per-call context, so
// the underlying http.Client carries no global timeout.
func NewClient(cfg config.WebhookConfig) *Client {
	return &Client{cfg: cfg, httpClient: &http.Client{}}
}

// SetHTTPClient swaps the transport (useful for testing).
func (c *Client) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

// do sends body as JSON (when non-nil) and returns the raw response body.
// Transport failures and non-2xx answers become appErrors.UpstreamError.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = c.cfg.Timeout()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-N8N-API-KEY", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstream(serviceName, 0, err)
	}
	defer resp.Body.Close()

	limit := c.cfg.MaxResponseBytes
	if limit <= 0 {
		limit = defaultMaxResponseBytes
	}
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, appErrors.NewUpstream(serviceName, resp.StatusCode, fmt.Errorf("read response body: %w", err))
	}
	if int64(len(respBody)) > limit {
		return nil, appErrors.NewUpstream(serviceName, resp.StatusCode, fmt.Errorf("response body exceeds %d bytes", limit))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.NewUpstream(serviceName, resp.StatusCode, fmt.Errorf("%s", truncate(respBody, 200)))
	}
	return respBody, nil
}

// decode unmarshals a response body; malformed JSON counts as an upstream
// failure.
func decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return appErrors.NewUpstream(serviceName, 0, fmt.Errorf("malformed response: %w", err))
	}
	return nil
}

func withQuery(endpoint string, params map[string]string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
