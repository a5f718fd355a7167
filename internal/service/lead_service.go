package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/unclebandit/marketing-ops-backend/internal/cache"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/lead"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// LeadList is what the leads table and the campaign form display.
type LeadList struct {
	Leads       []model.Lead         `json:"leads"`
	Columns     []string             `json:"columns"`
	Campaigns   []model.LeadCampaign `json:"campaigns"`
	Total       int                  `json:"total"`
	Quarantined int                  `json:"quarantined"`
}

type LeadService struct {
	Source LeadSource
	Cache  *cache.LeadCache
}

func (s *LeadService) load(ctx context.Context) (*lead.Result, error) {
	raw, err := s.Cache.Get(ctx, s.Source.ListLeads)
	if err != nil {
		return nil, err
	}
	res, err := lead.Parse(raw)
	if err != nil {
		// The listing came back but is not JSON we understand.
		return nil, appErrors.NewUpstream("n8n", 0, err)
	}
	if res.Quarantined > 0 {
		slog.Warn("lead records quarantined", "count", res.Quarantined)
	}
	return res, nil
}

// List returns the leads of one lead campaign, or all of them for "" and
// "all". Campaigns always lists every campaign seen.
func (s *LeadService) List(ctx context.Context, campaignID string) (*LeadList, error) {
	res, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	leads := lead.FilterByCampaign(res.Leads, campaignID)
	return &LeadList{
		Leads:       leads,
		Columns:     res.Columns,
		Campaigns:   lead.Campaigns(res.Leads),
		Total:       len(leads),
		Quarantined: res.Quarantined,
	}, nil
}

func (s *LeadService) Campaigns(ctx context.Context) ([]model.LeadCampaign, error) {
	res, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return lead.Campaigns(res.Leads), nil
}

// Export writes the filtered leads as CSV.
func (s *LeadService) Export(ctx context.Context, campaignID string, w io.Writer) error {
	list, err := s.List(ctx, campaignID)
	if err != nil {
		return err
	}
	return lead.WriteCSV(w, list.Columns, list.Leads)
}

// First returns the first lead of a lead campaign, used as the sample
// recipient for previews and tests. ok is false when there are none.
func (s *LeadService) First(ctx context.Context, campaignID string) (model.Lead, bool, error) {
	list, err := s.List(ctx, campaignID)
	if err != nil {
		return model.Lead{}, false, err
	}
	if len(list.Leads) == 0 {
		return model.Lead{}, false, nil
	}
	return list.Leads[0], true, nil
}

func (s *LeadService) Invalidate(ctx context.Context) {
	s.Cache.Invalidate(ctx)
}
