package controller_test

import (
	"context"
	"errors"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/queue"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
)

// --- Mock Repositories ---

type MockCampaignRepo struct {
	campaigns map[string]*model.Campaign
}

func (m *MockCampaignRepo) List(ctx context.Context, f repository.CampaignFilter) ([]*model.Campaign, error) {
	out := []*model.Campaign{}
	for _, c := range m.campaigns {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, appErrors.NewNotFound("campaign", id)
	}
	return c, nil
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = "created"
	c.Status = model.StatusDraft
	m.campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepo) Update(ctx context.Context, c *model.Campaign) error {
	m.campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepo) UpdateStatusFrom(ctx context.Context, id string, from, to model.CampaignStatus) error {
	c, ok := m.campaigns[id]
	if !ok || c.Status != from {
		return appErrors.NewConflict("campaign %s is no longer %s", id, from)
	}
	c.Status = to
	return nil
}

func (m *MockCampaignRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.campaigns[id]; !ok {
		return appErrors.NewNotFound("campaign", id)
	}
	delete(m.campaigns, id)
	return nil
}

type MockBrandRepo struct {
	brands map[int64]*model.Brand
}

func (m *MockBrandRepo) List(ctx context.Context, byName bool) ([]*model.Brand, error) {
	out := []*model.Brand{}
	for _, b := range m.brands {
		out = append(out, b)
	}
	return out, nil
}

func (m *MockBrandRepo) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	b, ok := m.brands[id]
	if !ok {
		return nil, appErrors.NewNotFound("brand", id)
	}
	return b, nil
}

func (m *MockBrandRepo) Create(ctx context.Context, b *model.Brand) error {
	b.ID = int64(len(m.brands) + 1)
	m.brands[b.ID] = b
	return nil
}

func (m *MockBrandRepo) Update(ctx context.Context, b *model.Brand) error {
	m.brands[b.ID] = b
	return nil
}

func (m *MockBrandRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.brands[id]; !ok {
		return appErrors.NewNotFound("brand", id)
	}
	delete(m.brands, id)
	return nil
}

type MockLandingPageRepo struct {
	pages map[int64]*model.LandingPage
}

func (m *MockLandingPageRepo) List(ctx context.Context) ([]*model.LandingPage, error) {
	out := []*model.LandingPage{}
	for _, p := range m.pages {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockLandingPageRepo) GetByID(ctx context.Context, id int64) (*model.LandingPage, error) {
	p, ok := m.pages[id]
	if !ok {
		return nil, appErrors.NewNotFound("landing page", id)
	}
	return p, nil
}

func (m *MockLandingPageRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.LandingPage, error) {
	for _, p := range m.pages {
		if p.SessionID == sessionID {
			return p, nil
		}
	}
	return nil, appErrors.NewNotFound("landing page", sessionID)
}

func (m *MockLandingPageRepo) Create(ctx context.Context, p *model.LandingPage) error {
	p.ID = int64(len(m.pages) + 1)
	m.pages[p.ID] = p
	return nil
}

func (m *MockLandingPageRepo) UpdateHeaderCode(ctx context.Context, id int64, code string) error {
	p, ok := m.pages[id]
	if !ok {
		return appErrors.NewNotFound("landing page", id)
	}
	p.HeaderCode = &code
	return nil
}

func (m *MockLandingPageRepo) Delete(ctx context.Context, id int64) error {
	delete(m.pages, id)
	return nil
}

var (
	_ repository.CampaignRepositoryInterface    = (*MockCampaignRepo)(nil)
	_ repository.BrandRepositoryInterface       = (*MockBrandRepo)(nil)
	_ repository.LandingPageRepositoryInterface = (*MockLandingPageRepo)(nil)
)

type MockQueue struct {
	published []any
	err       error
}

func (m *MockQueue) Publish(topic string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, payload)
	return nil
}

func (m *MockQueue) Subscribe(topic string, handler queue.Handler) error { return nil }

var errBoom = errors.New("boom")
