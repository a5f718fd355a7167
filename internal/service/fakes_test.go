package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/queue"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
	"github.com/unclebandit/marketing-ops-backend/internal/sms"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

// --- Mock Repositories ---

type MockImageRepo struct {
	images    map[string]*model.Image
	createErr error
	deleteErr error
	nextID    int
}

func newMockImageRepo() *MockImageRepo {
	return &MockImageRepo{images: map[string]*model.Image{}}
}

func (m *MockImageRepo) List(ctx context.Context, brand string) ([]*model.Image, error) {
	out := []*model.Image{}
	for _, img := range m.images {
		if brand == "" || (img.BrandName != nil && *img.BrandName == brand) {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *MockImageRepo) GetByID(ctx context.Context, id string) (*model.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, appErrors.NewNotFound("image", id)
	}
	return img, nil
}

func (m *MockImageRepo) Create(ctx context.Context, img *model.Image) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	img.ID = fmt.Sprintf("img-%d", m.nextID)
	m.images[img.ID] = img
	return nil
}

func (m *MockImageRepo) UpdateBrand(ctx context.Context, id string, brand *string) (*model.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, appErrors.NewNotFound("image", id)
	}
	img.BrandName = brand
	return img, nil
}

func (m *MockImageRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.images[id]; !ok {
		return appErrors.NewNotFound("image", id)
	}
	delete(m.images, id)
	return nil
}

var _ repository.ImageRepositoryInterface = (*MockImageRepo)(nil)

type MockStore struct {
	mu        sync.Mutex
	puts      []string
	deletes   []string
	putErr    error
	deleteErr error
}

func (m *MockStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts = append(m.puts, key)
	if m.putErr != nil {
		return m.putErr
	}
	_, err := io.Copy(io.Discard, r)
	return err
}

func (m *MockStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, path)
	return m.deleteErr
}

func (m *MockStore) PublicURL(key string) string {
	return "https://proj.supabase.co/storage/v1/object/public/images/" + key
}

type MockCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*model.Campaign
	statusErr error
	updates   int
	lastList  repository.CampaignFilter
	afterGet  func()
}

func newMockCampaignRepo(cs ...*model.Campaign) *MockCampaignRepo {
	m := &MockCampaignRepo{campaigns: map[string]*model.Campaign{}}
	for _, c := range cs {
		m.campaigns[c.ID] = c
	}
	return m
}

func (m *MockCampaignRepo) List(ctx context.Context, f repository.CampaignFilter) ([]*model.Campaign, error) {
	m.lastList = f
	out := []*model.Campaign{}
	for _, c := range m.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	m.mu.Lock()
	c, ok := m.campaigns[id]
	var cp model.Campaign
	if ok {
		cp = *c
	}
	m.mu.Unlock()
	if !ok {
		return nil, appErrors.NewNotFound("campaign", id)
	}
	if m.afterGet != nil {
		m.afterGet()
	}
	return &cp, nil
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = "new-campaign"
	c.Status = model.StatusDraft
	m.campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepo) Update(ctx context.Context, c *model.Campaign) error {
	if _, ok := m.campaigns[c.ID]; !ok {
		return appErrors.NewNotFound("campaign", c.ID)
	}
	m.updates++
	m.campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepo) UpdateStatusFrom(ctx context.Context, id string, from, to model.CampaignStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return m.statusErr
	}
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
	if _, ok := m.brands[b.ID]; !ok {
		return appErrors.NewNotFound("brand", b.ID)
	}
	m.brands[b.ID] = b
	return nil
}

func (m *MockBrandRepo) Delete(ctx context.Context, id int64) error {
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

func (m *MockLandingPageRepo) UpdateHeaderCode(ctx context.Context, id int64, headerCode string) error {
	p, ok := m.pages[id]
	if !ok {
		return appErrors.NewNotFound("landing page", id)
	}
	p.HeaderCode = &headerCode
	return nil
}

func (m *MockLandingPageRepo) Delete(ctx context.Context, id int64) error {
	delete(m.pages, id)
	return nil
}

// MockQueue records published payloads.
type MockQueue struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (m *MockQueue) Publish(topic string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, payload)
	return nil
}

func (m *MockQueue) Subscribe(topic string, handler queue.Handler) error {
	return nil
}

var errBoom = errors.New("boom")

func readerOf(data []byte) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// --- Mock webhook clients ---

type MockLeadSource struct {
	data  []byte
	err   error
	calls int
}

func (m *MockLeadSource) ListLeads(ctx context.Context) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

type MockBuilder struct {
	reply   *webhook.LandingReply
	err     error
	delay   time.Duration
	prompts []string
}

func (m *MockBuilder) GenerateLandingPage(ctx context.Context, prompt, session string) (*webhook.LandingReply, error) {
	m.prompts = append(m.prompts, prompt)
	time.Sleep(m.delay)
	return m.reply, m.err
}

type MockGenerator struct {
	out  string
	err  error
	last webhook.ContentRequest
}

func (m *MockGenerator) GenerateContent(ctx context.Context, req webhook.ContentRequest) (string, error) {
	m.last = req
	return m.out, m.err
}

type MockEmailSender struct {
	sent []webhook.TestEmail
	err  error
}

func (m *MockEmailSender) SendTestEmail(ctx context.Context, email webhook.TestEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type MockSMS struct {
	to, body, media string
	err             error
}

func (m *MockSMS) Send(ctx context.Context, to, body, mediaURL string) (*sms.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.to, m.body, m.media = to, body, mediaURL
	return &sms.Message{SID: "SM1", Status: "queued", To: to, Body: body}, nil
}

type MockExecutions struct {
	execs      []webhook.Execution
	detail     json.RawMessage
	err        error
	workflowID string
}

func (m *MockExecutions) ListExecutions(ctx context.Context, workflowID string) ([]webhook.Execution, error) {
	m.workflowID = workflowID
	return m.execs, m.err
}

func (m *MockExecutions) GetExecution(ctx context.Context, id, workflowID string) (json.RawMessage, error) {
	m.workflowID = workflowID
	return m.detail, m.err
}

type MockAssistant struct {
	reply   string
	flowRes json.RawMessage
	err     error
	session string
	flowReq webhook.LeadsFlowRequest
}

func (m *MockAssistant) Chat(ctx context.Context, prompt, session string) (string, error) {
	m.session = session
	return m.reply, m.err
}

func (m *MockAssistant) LaunchLeadsFlow(ctx context.Context, req webhook.LeadsFlowRequest) (json.RawMessage, error) {
	m.flowReq = req
	return m.flowRes, m.err
}

type MockLauncher struct {
	mu   sync.Mutex
	jobs []model.LaunchJob
	err  error
}

func (m *MockLauncher) LaunchCampaign(ctx context.Context, job model.LaunchJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return m.err
}
