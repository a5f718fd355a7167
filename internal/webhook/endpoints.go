package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// DefaultReply is shown when an assistant answers without text.
const DefaultReply = "Sorry, I did not understand that."

// ListLeads returns the raw lead-listing body for package lead to parse.
func (c *Client) ListLeads(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.cfg.LeadsURL, nil, 0)
}

type ContentRequest struct {
	BrandID             int64    `json:"brand_id"`
	ContentType         string   `json:"content_type"`
	UserInput           string   `json:"user_input"`
	BrandName           string   `json:"brand_name"`
	BrandContent        string   `json:"brand_content"`
	IncludeImage        bool     `json:"include_image"`
	IncludePurchaseLink bool     `json:"include_purchase_link"`
	ProductImages       []string `json:"product_images"`
	ProductLink         string   `json:"product_link"`
	LandingPageURL      *string  `json:"landing_page_url"`
	LandingPageName     *string  `json:"landing_page_name"`
}

// GenerateContent asks the content workflow for text. The workflow has
// answered in several shapes over time; the first one present wins.
func (c *Client) GenerateContent(ctx context.Context, req ContentRequest) (string, error) {
	if req.ProductImages == nil {
		req.ProductImages = []string{}
	}
	data, err := c.do(ctx, http.MethodPost, c.cfg.ContentURL, req, 0)
	if err != nil {
		return "", err
	}
	return ExtractContent(data), nil
}

// ExtractContent reads output.content, body.generated_content,
// generated_content, a bare JSON string, and finally the raw JSON.
func ExtractContent(data []byte) string {
	var shaped struct {
		Output *struct {
			Content string `json:"content"`
		} `json:"output"`
		Body *struct {
			GeneratedContent string `json:"generated_content"`
		} `json:"body"`
		GeneratedContent string `json:"generated_content"`
	}
	if err := json.Unmarshal(data, &shaped); err == nil {
		switch {
		case shaped.Output != nil && shaped.Output.Content != "":
			return shaped.Output.Content
		case shaped.Body != nil && shaped.Body.GeneratedContent != "":
			return shaped.Body.GeneratedContent
		case shaped.GeneratedContent != "":
			return shaped.GeneratedContent
		}
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(data))
}

// LandingReply is the builder's answer to one chat turn.
type LandingReply struct {
	Response          string `json:"response"`
	IsLandingPageLive bool   `json:"is_landing_page_live"`
	LandingPageURL    string `json:"landing_page_url"`
}

// GenerateLandingPage sends one builder prompt. The call may run for up to
// the landing timeout.
func (c *Client) GenerateLandingPage(ctx context.Context, prompt, session string) (*LandingReply, error) {
	body := map[string]string{"prompt": prompt, "session": session}
	data, err := c.do(ctx, http.MethodPost, c.cfg.LandingPageURL, body, c.cfg.LandingTimeout())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data *LandingReply `json:"data"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	reply := envelope.Data
	if reply == nil {
		reply = &LandingReply{}
	}
	if reply.Response == "" {
		reply.Response = DefaultReply
	}
	return reply, nil
}

// LaunchCampaign hands a launch snapshot to the delivery workflow.
func (c *Client) LaunchCampaign(ctx context.Context, job model.LaunchJob) error {
	_, err := c.do(ctx, http.MethodPost, c.cfg.LaunchURL, job, 0)
	return err
}

type TestEmail struct {
	To      string `json:"toemail"`
	Subject string `json:"email_subject"`
	Body    string `json:"email_body"`
}

func (c *Client) SendTestEmail(ctx context.Context, email TestEmail) error {
	_, err := c.do(ctx, http.MethodPost, c.cfg.TestEmailURL, email, 0)
	return err
}

// Chat sends one assistant prompt and returns data[0].output.
func (c *Client) Chat(ctx context.Context, prompt, session string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, c.cfg.ChatURL, map[string]string{"prompt": prompt, "session": session}, 0)
	if err != nil {
		return "", err
	}
	var out []struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal(data, &out); err != nil || len(out) == 0 || out[0].Output == "" {
		return DefaultReply, nil
	}
	return out[0].Output, nil
}

type LeadsFlowRequest struct {
	CampaignName string `json:"campaign_name"`
	CampaignID   string `json:"campaign_id"`
	Weblink      string `json:"weblink"`
	PerPage      int    `json:"per_page"`
}

// LaunchLeadsFlow starts a lead-scraping run and returns the workflow's
// acknowledgement untouched.
func (c *Client) LaunchLeadsFlow(ctx context.Context, req LeadsFlowRequest) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodPost, c.cfg.LeadsFlowURL, req, 0)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, decode(data, new(any))
	}
	return json.RawMessage(data), nil
}
