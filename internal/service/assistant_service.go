package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

const defaultPerPage = 20

type ChatReply struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ChatService relays messages to the marketing assistant. The session id
// keeps the conversation memory on the workflow side.
type ChatService struct {
	Assistant Assistant
	Now       func() time.Time
}

func (s *ChatService) Chat(ctx context.Context, prompt, session string) (*ChatReply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, appErrors.NewValidation("Message is required")
	}
	if session = strings.TrimSpace(session); session == "" {
		now := time.Now()
		if s.Now != nil {
			now = s.Now()
		}
		session = NewSessionID(now)
	}
	out, err := s.Assistant.Chat(ctx, prompt, session)
	if err != nil {
		return nil, err
	}
	return &ChatReply{Response: out, SessionID: session}, nil
}

type LeadsFlowInput struct {
	CampaignName string `json:"campaign_name"`
	Weblink      string `json:"weblink"`
	PerPage      int    `json:"per_page"`
}

type LeadsFlowResult struct {
	CampaignID string          `json:"campaign_id"`
	Response   json.RawMessage `json:"response"`
}

// FlowService starts lead generation runs.
type FlowService struct {
	Assistant Assistant
	Leads     *LeadService
}

// LaunchLeads starts a scraping run under a fresh lead campaign id. The
// cached lead listing is dropped so the new leads show up once written.
func (s *FlowService) LaunchLeads(ctx context.Context, in LeadsFlowInput) (*LeadsFlowResult, error) {
	name := strings.TrimSpace(in.CampaignName)
	link := strings.TrimSpace(in.Weblink)
	if name == "" || link == "" {
		return nil, appErrors.NewValidation("Please fill in all required fields")
	}
	perPage := in.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	req := webhook.LeadsFlowRequest{
		CampaignName: name,
		CampaignID:   uuid.NewString(),
		Weblink:      link,
		PerPage:      perPage,
	}
	resp, err := s.Assistant.LaunchLeadsFlow(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.Leads != nil {
		s.Leads.Invalidate(ctx)
	}
	slog.Info("leads flow launched", "campaign_id", req.CampaignID, "campaign_name", name, "per_page", perPage)
	return &LeadsFlowResult{CampaignID: req.CampaignID, Response: resp}, nil
}
