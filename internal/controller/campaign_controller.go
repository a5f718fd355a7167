// internal/controller/campaign_controller.go
package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/marketing-ops-backend/internal/httputil"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	ContentService  *service.ContentService
}

func (c *CampaignController) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := c.CampaignService.Dashboard(r.Context())
	if err != nil {
		httputil.WriteError(w, err, "Failed to load dashboard")
		return
	}
	httputil.OK(w, summary)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.CampaignFilter{
		Search: q.Get("search"),
		Status: model.CampaignStatus(allAsEmpty(q.Get("status"))),
		Type:   model.CampaignType(allAsEmpty(q.Get("type"))),
	}

	campaigns, err := c.CampaignService.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch campaigns")
		return
	}
	httputil.OK(w, map[string]any{
		"data":  campaigns,
		"total": len(campaigns),
	})
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := c.CampaignService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch campaign")
		return
	}
	httputil.OK(w, campaign)
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body service.CampaignInput
	if !httputil.Decode(w, r, &body) {
		return
	}

	campaign, err := c.CampaignService.Create(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err, "Failed to save campaign")
		return
	}
	httputil.Created(w, campaign)
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var body service.CampaignInput
	if !httputil.Decode(w, r, &body) {
		return
	}

	campaign, err := c.CampaignService.Update(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		httputil.WriteError(w, err, "Failed to update campaign")
		return
	}
	httputil.OK(w, campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := c.CampaignService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err, "Failed to delete campaign")
		return
	}
	httputil.OK(w, map[string]any{"success": true})
}

func (c *CampaignController) LaunchCampaign(w http.ResponseWriter, r *http.Request) {
	result, err := c.CampaignService.Launch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err, "Failed to launch campaign")
		return
	}
	httputil.OK(w, result)
}

func (c *CampaignController) FormOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := c.CampaignService.FormOptions(r.Context())
	if err != nil {
		httputil.WriteError(w, err, "Failed to load form options")
		return
	}
	httputil.OK(w, opts)
}

func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lead *model.Lead `json:"lead"`
	}
	if r.ContentLength != 0 && !httputil.Decode(w, r, &body) {
		return
	}

	preview, err := c.ContentService.PersonalizedPreview(r.Context(), chi.URLParam(r, "id"), body.Lead)
	if err != nil {
		httputil.WriteError(w, err, "Failed to render preview")
		return
	}
	httputil.OK(w, preview)
}

func (c *CampaignController) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var body service.TestEmailInput
	if !httputil.Decode(w, r, &body) {
		return
	}

	if err := c.ContentService.SendTestEmail(r.Context(), body); err != nil {
		httputil.WriteError(w, err, "Error sending test email. Please try again.")
		return
	}
	httputil.OK(w, map[string]any{"success": true, "to": strings.TrimSpace(body.To)})
}

func (c *CampaignController) SendTestMMS(w http.ResponseWriter, r *http.Request) {
	var body service.TestMMSInput
	if !httputil.Decode(w, r, &body) {
		return
	}

	msg, err := c.ContentService.SendTestMMS(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err, "Error sending test MMS. Please try again.")
		return
	}
	httputil.OK(w, map[string]any{"success": true, "message": msg})
}

func (c *CampaignController) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var body service.GenerateInput
	if !httputil.Decode(w, r, &body) {
		return
	}

	content, err := c.ContentService.Generate(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err, "Error generating content. Please try again.")
		return
	}
	httputil.OK(w, map[string]any{
		"content_type":      body.ContentType,
		"generated_content": content,
	})
}

func allAsEmpty(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// int64Param parses a numeric URL parameter, writing a 400 when it is not one.
func int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httputil.BadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}
