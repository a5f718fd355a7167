package analytics

import "github.com/unclebandit/marketing-ops-backend/internal/model"

// Summary is the dashboard roll-up over every campaign.
type Summary struct {
	Campaigns       int                          `json:"campaigns"`
	ByStatus        map[model.CampaignStatus]int `json:"by_status"`
	TotalRecipients int                          `json:"total_recipients"`
	EmailsSent      int                          `json:"emails_sent"`
	EmailsDelivered int                          `json:"emails_delivered"`
	EmailsOpened    int                          `json:"emails_opened"`
	EmailsClicked   int                          `json:"emails_clicked"`
	MMSSent         int                          `json:"mms_sent"`
	MMSDelivered    int                          `json:"mms_delivered"`
	DeliveryRate    Rate                         `json:"delivery_rate"`
	AvgOpenRate     Rate                         `json:"avg_open_rate"`
	AvgClickRate    Rate                         `json:"avg_click_rate"`
}

// Summarize sums counters across campaigns. Average open and click rates
// are the mean over campaigns whose own denominator is non-zero, so a
// campaign that has not delivered anything yet does not drag the average
// down.
func Summarize(campaigns []*model.Campaign) Summary {
	s := Summary{ByStatus: map[model.CampaignStatus]int{}}
	var (
		emailTotal          int
		openSum, clickSum   float64
		openCount, clickCnt int
	)
	for _, c := range campaigns {
		s.Campaigns++
		s.ByStatus[c.Status]++
		s.TotalRecipients += nonNegative(c.TotalRecipients)
		s.EmailsSent += nonNegative(c.EmailsSent)
		s.EmailsDelivered += nonNegative(c.EmailsDelivered)
		s.EmailsOpened += nonNegative(c.EmailsOpened)
		s.EmailsClicked += nonNegative(c.EmailsClicked)
		s.MMSSent += nonNegative(c.MMSSent)
		s.MMSDelivered += nonNegative(c.MMSDelivered)

		m := EmailMetricsFor(c)
		emailTotal += m.Total
		if m.Delivered > 0 {
			openSum += m.OpenRate.Value
			openCount++
		}
		if m.Opened > 0 {
			clickSum += m.ClickRate.Value
			clickCnt++
		}
	}

	s.DeliveryRate = percent(s.EmailsDelivered, emailTotal)
	s.AvgOpenRate = mean(openSum, openCount)
	s.AvgClickRate = mean(clickSum, clickCnt)
	return s
}

func mean(sum float64, n int) Rate {
	if n == 0 {
		return Rate{Value: 0, Text: "0"}
	}
	return fromFloat(sum / float64(n))
}
