package model

// LaunchJob is the denormalised campaign snapshot handed to the launch
// webhook once a campaign has been marked active.
type LaunchJob struct {
	CampaignID             string       `json:"campaign_id"`
	CampaignName           string       `json:"campaign_name"`
	CampaignType           CampaignType `json:"campaign_type"`
	BrandName              string       `json:"brand_name"`
	EmailSubject           string       `json:"email_subject"`
	EmailBody              string       `json:"email_body"`
	SendEmailAsImage       bool         `json:"send_email_as_image"`
	MMSTextContent         string       `json:"mms_text_content"`
	MMSImageURL            string       `json:"mms_image_url"`
	TotalRecipients        int          `json:"total_recipients"`
	SelectedCampaignFilter string       `json:"selected_campaign_filter"`
}

func NewLaunchJob(c *Campaign) LaunchJob {
	return LaunchJob{
		CampaignID:             c.ID,
		CampaignName:           c.Name,
		CampaignType:           c.Type,
		BrandName:              c.BrandName,
		EmailSubject:           c.EmailSubject,
		EmailBody:              c.EmailBody,
		SendEmailAsImage:       c.SendEmailAsImage,
		MMSTextContent:         c.MMSTextContent,
		MMSImageURL:            c.MMSImageURL,
		TotalRecipients:        c.TotalRecipients,
		SelectedCampaignFilter: c.SelectedCampaignFilter,
	}
}
