// internal/service/campaign_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/marketing-ops-backend/internal/analytics"
	"github.com/unclebandit/marketing-ops-backend/internal/config"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/lead"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/queue"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
)

const (
	allCampaignsFilter = "All Campaigns"
	defaultCreatedBy   = "User"
)

// Launch notification outcomes reported to the caller.
const (
	NotificationQueued = "queued"
	NotificationFailed = "failed"
)

type CampaignService struct {
	CampaignRepo    repository.CampaignRepositoryInterface
	BrandRepo       repository.BrandRepositoryInterface
	LandingPageRepo repository.LandingPageRepositoryInterface
	Leads           *LeadService
	Queue           queue.Queue
	Landing         config.LandingConfig
	Now             func() time.Time
}

// CampaignInput is the campaign form as submitted by the dashboard.
type CampaignInput struct {
	Name                string             `json:"campaign_name"`
	Description         string             `json:"campaign_description"`
	Type                model.CampaignType `json:"campaign_type"`
	BrandID             int64              `json:"brand_id"`
	LandingPageID       *int64             `json:"landing_page_id"`
	EmailSubject        string             `json:"email_subject"`
	EmailBody           string             `json:"email_body"`
	SendEmailAsImage    bool               `json:"send_email_as_image"`
	EmailImageURL       string             `json:"email_image_url"`
	EmailLandingPageURL string             `json:"email_landing_page_url"`
	MMSTextContent      string             `json:"mms_text_content"`
	MMSImageURL         string             `json:"mms_image_url"`
	LeadCampaignID      string             `json:"lead_campaign_id"`
	LeadCampaignName    string             `json:"lead_campaign_name"`
	TotalRecipients     int                `json:"total_recipients"`
	CreatedBy           string             `json:"created_by"`
}

type LaunchResult struct {
	Campaign     *model.Campaign `json:"campaign"`
	Notification string          `json:"notification"`
}

// FormOptions feeds the campaign form's select boxes.
type FormOptions struct {
	Brands        []*model.Brand       `json:"brands"`
	LandingPages  []*model.LandingPage `json:"landing_pages"`
	LeadCampaigns []model.LeadCampaign `json:"lead_campaigns"`
}

func (s *CampaignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CampaignService) List(ctx context.Context, f repository.CampaignFilter) ([]analytics.CampaignMetrics, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, appErrors.NewValidation("invalid status filter: %s", f.Status)
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, appErrors.NewValidation("invalid type filter: %s", f.Type)
	}
	f.Search = strings.TrimSpace(f.Search)

	campaigns, err := s.CampaignRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.ForCampaigns(campaigns), nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*analytics.CampaignMetrics, error) {
	c, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m := analytics.ForCampaign(c)
	return &m, nil
}

func (s *CampaignService) Dashboard(ctx context.Context) (*analytics.Summary, error) {
	campaigns, err := s.CampaignRepo.List(ctx, repository.CampaignFilter{})
	if err != nil {
		return nil, err
	}
	sum := analytics.Summarize(campaigns)
	return &sum, nil
}

// Create saves the form as a new draft.
func (s *CampaignService) Create(ctx context.Context, in CampaignInput) (*model.Campaign, error) {
	c, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	slog.Info("campaign saved", "campaign_id", c.ID, "brand", c.BrandName, "type", c.Type)
	return c, nil
}

// Update rewrites the content fields of a campaign. Status and delivery
// counters are left untouched.
func (s *CampaignService) Update(ctx context.Context, id string, in CampaignInput) (*model.Campaign, error) {
	existing, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.Status = existing.Status
	c.CreatedAt = existing.CreatedAt
	if err := s.CampaignRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.CampaignRepo.GetByID(ctx, id)
}

func (s *CampaignService) Delete(ctx context.Context, id string) error {
	return s.CampaignRepo.Delete(ctx, id)
}

// Launch moves a draft to active and then queues the launch notification.
// Only the caller whose guarded transition succeeds publishes, so a draft is
// announced at most once. The status change stands even when the
// notification cannot be queued.
func (s *CampaignService) Launch(ctx context.Context, id string) (*LaunchResult, error) {
	c, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != model.StatusDraft {
		return nil, appErrors.NewConflict("campaign %s is %s, only drafts can be launched", id, c.Status)
	}

	if err := s.CampaignRepo.UpdateStatusFrom(ctx, id, model.StatusDraft, model.StatusActive); err != nil {
		return nil, fmt.Errorf("activate campaign: %w", err)
	}
	c.Status = model.StatusActive

	res := &LaunchResult{Campaign: c, Notification: NotificationQueued}
	if err := s.Queue.Publish(queue.LaunchTopic, model.NewLaunchJob(c)); err != nil {
		slog.Error("❌ failed to queue launch notification", "campaign_id", id, "error", err)
		res.Notification = NotificationFailed
		return res, nil
	}
	slog.Info("🚀 campaign launched", "campaign_id", id, "name", c.Name)
	return res, nil
}

// FormOptions loads brands, landing pages and lead campaigns concurrently.
// Lead campaigns are optional: a failing lead webhook leaves the list empty.
func (s *CampaignService) FormOptions(ctx context.Context) (*FormOptions, error) {
	opts := &FormOptions{LeadCampaigns: []model.LeadCampaign{}}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		brands, err := s.BrandRepo.List(gctx, true)
		opts.Brands = brands
		return err
	})
	g.Go(func() error {
		pages, err := s.LandingPageRepo.List(gctx)
		opts.LandingPages = pages
		return err
	})
	if s.Leads != nil {
		g.Go(func() error {
			campaigns, err := s.Leads.Campaigns(gctx)
			if err != nil {
				slog.Warn("lead campaigns unavailable", "error", err)
				return nil
			}
			opts.LeadCampaigns = campaigns
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return opts, nil
}

// build validates the form and resolves the brand and landing page it
// references into a campaign row.
func (s *CampaignService) build(ctx context.Context, in CampaignInput) (*model.Campaign, error) {
	if in.BrandID <= 0 {
		return nil, appErrors.NewValidation("Please select a brand")
	}
	if in.Type == "" {
		in.Type = model.CampaignTypeEmail
	}
	if !in.Type.Valid() {
		return nil, appErrors.NewValidation("invalid campaign type: %s", in.Type)
	}
	subject := strings.TrimSpace(in.EmailSubject)
	body := strings.TrimSpace(in.EmailBody)
	mms := strings.TrimSpace(in.MMSTextContent)
	if subject == "" && body == "" && mms == "" {
		return nil, appErrors.NewValidation("Please add some content (email subject, body, or MMS text)")
	}

	brand, err := s.BrandRepo.GetByID(ctx, in.BrandID)
	if err != nil {
		var nf *appErrors.NotFoundError
		if errors.As(err, &nf) {
			return nil, appErrors.NewValidation("Selected brand does not exist")
		}
		return nil, err
	}

	c := &model.Campaign{
		Name:                strings.TrimSpace(in.Name),
		Description:         strings.TrimSpace(in.Description),
		Type:                in.Type,
		BrandID:             brand.ID,
		BrandName:           brand.Name,
		EmailSubject:        subject,
		EmailBody:           body,
		SendEmailAsImage:    in.SendEmailAsImage,
		EmailImageURL:       strings.TrimSpace(in.EmailImageURL),
		EmailLandingPageURL: strings.TrimSpace(in.EmailLandingPageURL),
		MMSTextContent:      mms,
		MMSImageURL:         strings.TrimSpace(in.MMSImageURL),
		TotalRecipients:     in.TotalRecipients,
		CreatedBy:           strings.TrimSpace(in.CreatedBy),
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Campaign - %s - %s", brand.Name, s.now().Format("1/2/2006"))
	}
	if c.Description == "" {
		c.Description = "Campaign for " + brand.Name
	}
	if c.CreatedBy == "" {
		c.CreatedBy = defaultCreatedBy
	}
	if c.TotalRecipients < 0 {
		c.TotalRecipients = 0
	}

	var pageName string
	if in.LandingPageID != nil {
		page, err := s.LandingPageRepo.GetByID(ctx, *in.LandingPageID)
		if err != nil {
			var nf *appErrors.NotFoundError
			if errors.As(err, &nf) {
				return nil, appErrors.NewValidation("Selected landing page does not exist")
			}
			return nil, err
		}
		url := s.Landing.PageURL(page.SessionID)
		id := page.ID
		c.LandingPageID = &id
		c.LandingPageName = &page.Name
		c.LandingPageURL = &url
		pageName = page.Name
	}

	leadID := strings.TrimSpace(in.LeadCampaignID)
	if leadID == "" || leadID == lead.AllCampaigns {
		c.SelectedCampaignFilter = allCampaignsFilter
	} else {
		c.LeadCampaignID = &leadID
		c.SelectedCampaignFilter = strings.TrimSpace(in.LeadCampaignName)
		if c.SelectedCampaignFilter == "" {
			c.SelectedCampaignFilter = "Unknown"
		}
	}

	for _, t := range []string{brand.Name, string(c.Type), pageName} {
		if t != "" {
			c.Tags = append(c.Tags, t)
		}
	}
	return c, nil
}
