// Package sms sends test MMS messages through the Twilio REST API.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/unclebandit/marketing-ops-backend/internal/config"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
)

const serviceName = "twilio"

// Message is the subset of Twilio's message resource the UI shows.
type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
	From   string `json:"from"`
	Body   string `json:"body"`
}

type Client struct {
	cfg        config.TwilioConfig
	httpClient *http.Client
}

func NewClient(cfg config.TwilioConfig) *Client {
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// FormatE164 strips everything but digits, assumes a US number when ten
// digits remain, and prefixes "+".
func FormatE164(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 && !strings.HasPrefix(digits, "1") {
		digits = "1" + digits
	}
	return "+" + digits
}

// Send posts one message. mediaURL is optional.
func (c *Client) Send(ctx context.Context, to, body, mediaURL string) (*Message, error) {
	if !c.cfg.Enabled() {
		return nil, appErrors.NewValidation("SMS provider is not configured")
	}

	form := url.Values{}
	form.Set("From", c.cfg.FromNumber)
	form.Set("To", FormatE164(to))
	form.Set("Body", body)
	if mediaURL != "" {
		form.Set("MediaUrl", mediaURL)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstream(serviceName, 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, appErrors.NewUpstream(serviceName, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.NewUpstream(serviceName, resp.StatusCode, fmt.Errorf("%s", data))
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, appErrors.NewUpstream(serviceName, resp.StatusCode, fmt.Errorf("malformed response: %w", err))
	}
	return &msg, nil
}
