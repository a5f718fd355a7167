package service

import (
	"context"
	"encoding/json"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/sms"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

// The interfaces below are satisfied by *webhook.Client and *sms.Client.
// Services depend on the narrow view they need so tests can fake them.

type LeadSource interface {
	ListLeads(ctx context.Context) ([]byte, error)
}

type ContentGenerator interface {
	GenerateContent(ctx context.Context, req webhook.ContentRequest) (string, error)
}

type LandingBuilder interface {
	GenerateLandingPage(ctx context.Context, prompt, session string) (*webhook.LandingReply, error)
}

type CampaignLauncher interface {
	LaunchCampaign(ctx context.Context, job model.LaunchJob) error
}

type TestEmailSender interface {
	SendTestEmail(ctx context.Context, email webhook.TestEmail) error
}

type ExecutionSource interface {
	ListExecutions(ctx context.Context, workflowID string) ([]webhook.Execution, error)
	GetExecution(ctx context.Context, id, workflowID string) (json.RawMessage, error)
}

type Assistant interface {
	Chat(ctx context.Context, prompt, session string) (string, error)
	LaunchLeadsFlow(ctx context.Context, req webhook.LeadsFlowRequest) (json.RawMessage, error)
}

type MessageSender interface {
	Send(ctx context.Context, to, body, mediaURL string) (*sms.Message, error)
}

var (
	_ LeadSource       = (*webhook.Client)(nil)
	_ ContentGenerator = (*webhook.Client)(nil)
	_ LandingBuilder   = (*webhook.Client)(nil)
	_ CampaignLauncher = (*webhook.Client)(nil)
	_ TestEmailSender  = (*webhook.Client)(nil)
	_ ExecutionSource  = (*webhook.Client)(nil)
	_ Assistant        = (*webhook.Client)(nil)
	_ MessageSender    = (*sms.Client)(nil)
)
