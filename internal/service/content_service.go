package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/osteele/liquid"

	"github.com/unclebandit/marketing-ops-backend/internal/config"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/lead"
	"github.com/unclebandit/marketing-ops-backend/internal/logging"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
	"github.com/unclebandit/marketing-ops-backend/internal/sms"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

// Fields the content generator can write.
const (
	ContentEmailSubject = "email_subject"
	ContentEmailBody    = "email_body"
	ContentMMSText      = "mms_text"
)

const linkedImageBody = `<a href="{{ link | escape }}" target="_blank" style="display: block; text-decoration: none;">
  <img src="{{ image | escape }}" alt="Email Content - Click to view landing page" style="max-width: 100%; height: auto; cursor: pointer;" />
</a>`

const plainImageBody = `<img src="{{ image | escape }}" alt="Email Content" style="max-width: 100%; height: auto;" />`

type GenerateInput struct {
	BrandID       int64  `json:"brand_id"`
	ContentType   string `json:"content_type"`
	UserInput     string `json:"user_input"`
	IncludeImage  bool   `json:"include_image"`
	LandingPageID *int64 `json:"landing_page_id"`
}

type TestEmailInput struct {
	To                  string      `json:"to"`
	Subject             string      `json:"email_subject"`
	Body                string      `json:"email_body"`
	SendEmailAsImage    bool        `json:"send_email_as_image"`
	EmailImageURL       string      `json:"email_image_url"`
	EmailLandingPageURL string      `json:"email_landing_page_url"`
	LandingPageID       *int64      `json:"landing_page_id"`
	Lead                *model.Lead `json:"lead"`
}

type TestMMSInput struct {
	To       string      `json:"to"`
	Text     string      `json:"mms_text_content"`
	MediaURL string      `json:"mms_image_url"`
	Lead     *model.Lead `json:"lead"`
}

// Preview is a campaign's content as one lead would receive it.
type Preview struct {
	Lead         model.Lead `json:"lead"`
	EmailSubject string     `json:"email_subject"`
	EmailBody    string     `json:"email_body"`
	MMSText      string     `json:"mms_text_content"`
}

type ContentService struct {
	Brands    repository.BrandRepositoryInterface
	Pages     repository.LandingPageRepositoryInterface
	Campaigns repository.CampaignRepositoryInterface
	Leads     *LeadService
	Generator ContentGenerator
	Email     TestEmailSender
	SMS       MessageSender
	Landing   config.LandingConfig
}

// Generate asks the AI workflow for one piece of campaign copy.
func (s *ContentService) Generate(ctx context.Context, in GenerateInput) (string, error) {
	if in.BrandID <= 0 {
		return "", appErrors.NewValidation("Please select a brand first")
	}
	switch in.ContentType {
	case ContentEmailSubject, ContentEmailBody, ContentMMSText:
	default:
		return "", appErrors.NewValidation("invalid content type: %s", in.ContentType)
	}

	brand, err := s.Brands.GetByID(ctx, in.BrandID)
	if err != nil {
		return "", asValidation(err, "Selected brand does not exist")
	}

	req := webhook.ContentRequest{
		BrandID:       brand.ID,
		ContentType:   in.ContentType,
		UserInput:     strings.TrimSpace(in.UserInput),
		BrandName:     brand.Name,
		BrandContent:  brand.Content,
		IncludeImage:  in.IncludeImage,
		ProductImages: []string(brand.ProductImages),
	}
	if req.ProductImages == nil {
		req.ProductImages = []string{}
	}
	if in.LandingPageID != nil {
		page, err := s.Pages.GetByID(ctx, *in.LandingPageID)
		if err != nil {
			return "", asValidation(err, "Selected landing page does not exist")
		}
		url := s.Landing.PageURL(page.SessionID)
		req.LandingPageURL = &url
		req.LandingPageName = &page.Name
	}

	return s.Generator.GenerateContent(ctx, req)
}

// SendTestEmail sends the draft email to one address. Placeholders are
// filled from in.Lead when one is given.
func (s *ContentService) SendTestEmail(ctx context.Context, in TestEmailInput) error {
	to := strings.TrimSpace(in.To)
	if _, err := mail.ParseAddress(to); err != nil {
		return appErrors.NewValidation("Please enter a valid email address")
	}
	if strings.TrimSpace(in.Subject) == "" {
		return appErrors.NewValidation("Email subject is required")
	}

	subject, body := in.Subject, in.Body
	if in.Lead != nil {
		subject = RenderPlaceholders(subject, *in.Lead)
		body = RenderPlaceholders(body, *in.Lead)
	}

	if in.SendEmailAsImage {
		if strings.TrimSpace(in.EmailImageURL) == "" {
			return appErrors.NewValidation(`Please select a brand image for the email body when "Send Email as Image" is enabled.`)
		}
		link, err := s.imageLink(ctx, in)
		if err != nil {
			return err
		}
		body, err = imageEmailBody(in.EmailImageURL, link)
		if err != nil {
			return err
		}
	} else if strings.TrimSpace(body) == "" {
		return appErrors.NewValidation("Email body is required")
	}

	if err := s.Email.SendTestEmail(ctx, webhook.TestEmail{To: to, Subject: subject, Body: body}); err != nil {
		return err
	}
	slog.Info("test email sent", "to", logging.RedactEmail(to))
	return nil
}

// imageLink is where an image-only email links to: the explicit email
// landing page URL, else the selected landing page, else nothing.
func (s *ContentService) imageLink(ctx context.Context, in TestEmailInput) (string, error) {
	if u := strings.TrimSpace(in.EmailLandingPageURL); u != "" {
		return u, nil
	}
	if in.LandingPageID == nil {
		return "", nil
	}
	page, err := s.Pages.GetByID(ctx, *in.LandingPageID)
	if err != nil {
		return "", asValidation(err, "Selected landing page does not exist")
	}
	return s.Landing.PageURL(page.SessionID), nil
}

func imageEmailBody(image, link string) (string, error) {
	if link == "" {
		return renderTemplate(plainImageBody, liquid.Bindings{"image": image})
	}
	return renderTemplate(linkedImageBody, liquid.Bindings{"image": image, "link": link})
}

// SendTestMMS sends the draft MMS text to one phone number.
func (s *ContentService) SendTestMMS(ctx context.Context, in TestMMSInput) (*sms.Message, error) {
	to := sms.FormatE164(in.To)
	if len(to) < 8 {
		return nil, appErrors.NewValidation("Please enter a valid phone number")
	}
	text := in.Text
	if in.Lead != nil {
		text = RenderPlaceholders(text, *in.Lead)
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(in.MediaURL) == "" {
		return nil, appErrors.NewValidation("MMS text or image is required")
	}

	msg, err := s.SMS.Send(ctx, to, text, strings.TrimSpace(in.MediaURL))
	if err != nil {
		return nil, err
	}
	slog.Info("test mms sent", "to", logging.RedactPhone(to), "sid", msg.SID)
	return msg, nil
}

// PersonalizedPreview renders a saved campaign for one lead. Without an
// explicit lead the first lead of the campaign's lead filter is used, and
// without any leads the placeholder fallbacks show.
func (s *ContentService) PersonalizedPreview(ctx context.Context, campaignID string, l *model.Lead) (*Preview, error) {
	c, err := s.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	var target model.Lead
	switch {
	case l != nil:
		target = *l
	case s.Leads != nil:
		filter := lead.AllCampaigns
		if c.LeadCampaignID != nil {
			filter = *c.LeadCampaignID
		}
		first, ok, err := s.Leads.First(ctx, filter)
		if err != nil {
			slog.Warn("preview lead unavailable, using fallbacks", "campaign_id", campaignID, "error", err)
		} else if ok {
			target = first
		}
	}

	return &Preview{
		Lead:         target,
		EmailSubject: RenderPlaceholders(c.EmailSubject, target),
		EmailBody:    RenderPlaceholders(c.EmailBody, target),
		MMSText:      RenderPlaceholders(c.MMSTextContent, target),
	}, nil
}

// asValidation turns a NotFoundError for a referenced row into a user input
// error; anything else passes through.
func asValidation(err error, msg string) error {
	var nf *appErrors.NotFoundError
	if errors.As(err, &nf) {
		return appErrors.NewValidation("%s", msg)
	}
	return err
}
