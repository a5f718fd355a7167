// Package analytics derives presentation-ready campaign rates from the raw
// counters stored on each campaign row. Everything here is a pure function
// of its input.
package analytics

import (
	"math"
	"strconv"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// Rate is a percentage in [0, 100] with its one-decimal rendering.
type Rate struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

func (r Rate) String() string { return r.Text }

// percent returns part/whole*100. A zero whole renders as "0".
func percent(part, whole int) Rate {
	part, whole = nonNegative(part), nonNegative(whole)
	if whole == 0 {
		return Rate{Value: 0, Text: "0"}
	}
	return fromFloat(float64(part) / float64(whole) * 100)
}

func fromFloat(v float64) Rate {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	v = math.Round(v*10) / 10
	return Rate{Value: v, Text: strconv.FormatFloat(v, 'f', 1, 64)}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

type EmailMetrics struct {
	Total        int  `json:"total"`
	Delivered    int  `json:"delivered"`
	Opened       int  `json:"opened"`
	Clicked      int  `json:"clicked"`
	Failed       int  `json:"failed"`
	Pending      int  `json:"pending"`
	DeliveryRate Rate `json:"delivery_rate"`
	OpenRate     Rate `json:"open_rate"`
	ClickRate    Rate `json:"click_rate"`
}

type MMSMetrics struct {
	Total        int  `json:"total"`
	Delivered    int  `json:"delivered"`
	Failed       int  `json:"failed"`
	Pending      int  `json:"pending"`
	DeliveryRate Rate `json:"delivery_rate"`
}

func EmailMetricsFor(c *model.Campaign) EmailMetrics {
	total := nonNegative(c.EmailsSent) + nonNegative(c.EmailsPending)
	return EmailMetrics{
		Total:        total,
		Delivered:    nonNegative(c.EmailsDelivered),
		Opened:       nonNegative(c.EmailsOpened),
		Clicked:      nonNegative(c.EmailsClicked),
		Failed:       nonNegative(c.EmailsFailed),
		Pending:      nonNegative(c.EmailsPending),
		DeliveryRate: percent(c.EmailsDelivered, total),
		OpenRate:     percent(c.EmailsOpened, c.EmailsDelivered),
		ClickRate:    percent(c.EmailsClicked, c.EmailsOpened),
	}
}

func MMSMetricsFor(c *model.Campaign) MMSMetrics {
	total := nonNegative(c.MMSSent) + nonNegative(c.MMSPending)
	return MMSMetrics{
		Total:        total,
		Delivered:    nonNegative(c.MMSDelivered),
		Failed:       nonNegative(c.MMSFailed),
		Pending:      nonNegative(c.MMSPending),
		DeliveryRate: percent(c.MMSDelivered, total),
	}
}

// CampaignMetrics is a campaign row together with its derived rates.
type CampaignMetrics struct {
	*model.Campaign
	Email EmailMetrics `json:"email_metrics"`
	MMS   MMSMetrics   `json:"mms_metrics"`
}

func ForCampaign(c *model.Campaign) CampaignMetrics {
	return CampaignMetrics{Campaign: c, Email: EmailMetricsFor(c), MMS: MMSMetricsFor(c)}
}

func ForCampaigns(campaigns []*model.Campaign) []CampaignMetrics {
	out := make([]CampaignMetrics, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, ForCampaign(c))
	}
	return out
}
