package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/marketing-ops-backend/internal/config"
	"github.com/unclebandit/marketing-ops-backend/internal/controller"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

func newCampaignRouter(q *MockQueue, cs ...*model.Campaign) (http.Handler, *MockCampaignRepo) {
	repo := &MockCampaignRepo{campaigns: map[string]*model.Campaign{}}
	for _, c := range cs {
		repo.campaigns[c.ID] = c
	}
	brands := &MockBrandRepo{brands: map[int64]*model.Brand{1: {ID: 1, Name: "Acme"}}}
	pages := &MockLandingPageRepo{pages: map[int64]*model.LandingPage{}}

	ctrl := &controller.CampaignController{
		CampaignService: &service.CampaignService{
			CampaignRepo:    repo,
			BrandRepo:       brands,
			LandingPageRepo: pages,
			Queue:           q,
			Landing:         config.LandingConfig{PublicBaseURL: "https://pages.example.com/landing"},
		},
		ContentService: &service.ContentService{
			Brands:    brands,
			Pages:     pages,
			Campaigns: repo,
		},
	}

	r := chi.NewRouter()
	r.Get("/api/dashboard", ctrl.Dashboard)
	r.Get("/api/campaigns", ctrl.ListCampaigns)
	r.Post("/api/campaigns", ctrl.CreateCampaign)
	r.Get("/api/campaigns/{id}", ctrl.GetCampaign)
	r.Delete("/api/campaigns/{id}", ctrl.DeleteCampaign)
	r.Post("/api/campaigns/{id}/launch", ctrl.LaunchCampaign)
	r.Post("/api/campaigns/{id}/personalized-preview", ctrl.PersonalizedPreview)
	return r, repo
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var res map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	return res
}

func TestLaunchCampaignHandler(t *testing.T) {
	q := &MockQueue{}
	h, repo := newCampaignRouter(q, &model.Campaign{ID: "c1", Name: "Spring", Status: model.StatusDraft})

	w := do(t, h, http.MethodPost, "/api/campaigns/c1/launch", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "queued", res["notification"])
	assert.Equal(t, model.StatusActive, repo.campaigns["c1"].Status)
	assert.Len(t, q.published, 1)

	w = do(t, h, http.MethodPost, "/api/campaigns/c1/launch", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPost, "/api/campaigns/missing/launch", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLaunchCampaignNotificationFailure(t *testing.T) {
	q := &MockQueue{err: errBoom}
	h, repo := newCampaignRouter(q, &model.Campaign{ID: "c1", Status: model.StatusDraft})

	w := do(t, h, http.MethodPost, "/api/campaigns/c1/launch", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "failed", decodeBody(t, w)["notification"])
	assert.Equal(t, model.StatusActive, repo.campaigns["c1"].Status)
}

func TestCreateCampaignHandler(t *testing.T) {
	h, _ := newCampaignRouter(&MockQueue{})

	w := do(t, h, http.MethodPost, "/api/campaigns", map[string]any{
		"brand_id": 1, "campaign_type": "email", "email_subject": "Hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "draft", res["status"])
	assert.Equal(t, "Campaign for Acme", res["campaign_description"])

	w = do(t, h, http.MethodPost, "/api/campaigns", map[string]any{"campaign_type": "email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select a brand", decodeBody(t, w)["error"])

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCampaignsHandler(t *testing.T) {
	h, _ := newCampaignRouter(&MockQueue{},
		&model.Campaign{ID: "a", Status: model.StatusDraft, EmailsSent: 4, EmailsDelivered: 2},
		&model.Campaign{ID: "b", Status: model.StatusActive},
	)

	w := do(t, h, http.MethodGet, "/api/campaigns?status=draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.EqualValues(t, 1, res["total"])
	data := res["data"].([]any)
	metrics := data[0].(map[string]any)["email_metrics"].(map[string]any)
	assert.Equal(t, "50.0", metrics["delivery_rate"].(map[string]any)["text"])

	w = do(t, h, http.MethodGet, "/api/campaigns?status=all", nil)
	assert.EqualValues(t, 2, decodeBody(t, w)["total"])

	w = do(t, h, http.MethodGet, "/api/campaigns?status=sending", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardHandler(t *testing.T) {
	h, _ := newCampaignRouter(&MockQueue{},
		&model.Campaign{ID: "a", Status: model.StatusActive, EmailsSent: 10, EmailsDelivered: 10, EmailsOpened: 2},
	)

	w := do(t, h, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.EqualValues(t, 1, res["campaigns"])
	assert.Equal(t, "20.0", res["avg_open_rate"].(map[string]any)["text"])
}

func TestGetAndDeleteCampaignHandler(t *testing.T) {
	h, repo := newCampaignRouter(&MockQueue{}, &model.Campaign{ID: "c1", Name: "Spring"})

	w := do(t, h, http.MethodGet, "/api/campaigns/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Spring", decodeBody(t, w)["campaign_name"])

	w = do(t, h, http.MethodDelete, "/api/campaigns/c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.campaigns)

	w = do(t, h, http.MethodGet, "/api/campaigns/c1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonalizedPreviewHandler(t *testing.T) {
	h, _ := newCampaignRouter(&MockQueue{}, &model.Campaign{ID: "c1", EmailSubject: "Hi [[name]]"})

	w := do(t, h, http.MethodPost, "/api/campaigns/c1/personalized-preview", map[string]any{
		"lead": map[string]any{"name": "Alice"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi Alice", decodeBody(t, w)["email_subject"])

	w = do(t, h, http.MethodPost, "/api/campaigns/c1/personalized-preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi User", decodeBody(t, w)["email_subject"])
}
