package lead

import (
	"sort"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// AllCampaigns disables campaign filtering.
const AllCampaigns = "all"

// Campaigns lists the distinct lead campaigns, sorted by name. Leads without
// both an id and a name are ignored.
func Campaigns(leads []model.Lead) []model.LeadCampaign {
	byID := map[string]string{}
	for _, l := range leads {
		if l.CampaignID != "" && l.CampaignName != "" {
			byID[l.CampaignID] = l.CampaignName
		}
	}
	out := make([]model.LeadCampaign, 0, len(byID))
	for id, name := range byID {
		out = append(out, model.LeadCampaign{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func FilterByCampaign(leads []model.Lead, campaignID string) []model.Lead {
	if campaignID == "" || campaignID == AllCampaigns {
		return leads
	}
	out := []model.Lead{}
	for _, l := range leads {
		if l.CampaignID == campaignID {
			out = append(out, l)
		}
	}
	return out
}

// Value returns the display value of column for l.
func Value(l model.Lead, column string) string {
	switch column {
	case ColName:
		return l.Name
	case ColEmail:
		return l.Email
	case ColPersonal:
		return l.PersonalEmail
	case ColPhone:
		return l.Phone
	case ColAudience:
		return l.AudienceType
	case ColStatus:
		return l.Status
	case ColCampaignID:
		return l.CampaignID
	case ColCampaignName:
		return l.CampaignName
	}
	return l.Extra[column]
}
