package model

// Lead is one contact record from the lead-listing webhook after it has
// passed the ingestion boundary in package lead.
type Lead struct {
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	PersonalEmail string            `json:"personal_email,omitempty"`
	Phone         string            `json:"phone"`
	AudienceType  string            `json:"audience_type,omitempty"`
	Status        string            `json:"status,omitempty"`
	CampaignID    string            `json:"campaign_id,omitempty"`
	CampaignName  string            `json:"campaign_name,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// ContactEmail prefers the work email and falls back to the personal one.
func (l Lead) ContactEmail() string {
	if l.Email != "" {
		return l.Email
	}
	return l.PersonalEmail
}

// LeadCampaign is a campaign the lead generator tagged leads with. It is not
// a row of the campaigns table.
type LeadCampaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
