// internal/model/campaign.go
package model

import (
	"time"

	"github.com/lib/pq"
)

type CampaignType string

const (
	CampaignTypeEmail CampaignType = "email"
	CampaignTypeSMS   CampaignType = "sms"
	CampaignTypeBoth  CampaignType = "both"
)

func (t CampaignType) Valid() bool {
	switch t {
	case CampaignTypeEmail, CampaignTypeSMS, CampaignTypeBoth:
		return true
	}
	return false
}

// IncludesEmail reports whether the campaign sends over the email channel.
func (t CampaignType) IncludesEmail() bool {
	return t == CampaignTypeEmail || t == CampaignTypeBoth
}

type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
	StatusFailed    CampaignStatus = "failed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Campaign mirrors a row of the campaigns table. Counters are written by the
// external automation; rates are never stored.
type Campaign struct {
	ID                     string         `db:"id" json:"id"`
	Name                   string         `db:"campaign_name" json:"campaign_name"`
	Description            string         `db:"campaign_description" json:"campaign_description"`
	Type                   CampaignType   `db:"campaign_type" json:"campaign_type"`
	Status                 CampaignStatus `db:"status" json:"status"`
	BrandID                int64          `db:"brand_id" json:"brand_id"`
	BrandName              string         `db:"brand_name" json:"brand_name"`
	LandingPageID          *int64         `db:"landing_page_id" json:"landing_page_id"`
	LandingPageName        *string        `db:"landing_page_name" json:"landing_page_name"`
	LandingPageURL         *string        `db:"landing_page_url" json:"landing_page_url"`
	EmailSubject           string         `db:"email_subject" json:"email_subject"`
	EmailBody              string         `db:"email_body" json:"email_body"`
	SendEmailAsImage       bool           `db:"send_email_as_image" json:"send_email_as_image"`
	EmailImageURL          string         `db:"email_image_url" json:"email_image_url"`
	EmailLandingPageURL    string         `db:"email_landing_page_url" json:"email_landing_page_url"`
	MMSTextContent         string         `db:"mms_text_content" json:"mms_text_content"`
	MMSImageURL            string         `db:"mms_image_url" json:"mms_image_url"`
	SelectedCampaignFilter string         `db:"selected_campaign_filter" json:"selected_campaign_filter"`
	LeadCampaignID         *string        `db:"lead_campaign_id" json:"lead_campaign_id"`
	TotalRecipients        int            `db:"total_recipients" json:"total_recipients"`
	CreatedBy              string         `db:"created_by" json:"created_by"`
	Tags                   pq.StringArray `db:"tags" json:"tags"`

	EmailsSent      int `db:"emails_sent" json:"emails_sent"`
	EmailsDelivered int `db:"emails_delivered" json:"emails_delivered"`
	EmailsOpened    int `db:"emails_opened" json:"emails_opened"`
	EmailsClicked   int `db:"emails_clicked" json:"emails_clicked"`
	EmailsFailed    int `db:"emails_failed" json:"emails_failed"`
	EmailsPending   int `db:"emails_pending" json:"emails_pending"`
	MMSSent         int `db:"mms_sent" json:"mms_sent"`
	MMSDelivered    int `db:"mms_delivered" json:"mms_delivered"`
	MMSFailed       int `db:"mms_failed" json:"mms_failed"`
	MMSPending      int `db:"mms_pending" json:"mms_pending"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
