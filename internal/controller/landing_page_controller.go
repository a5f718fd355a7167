package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/marketing-ops-backend/internal/httputil"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

type LandingPageController struct {
	LandingPageService *service.LandingPageService
}

func (c *LandingPageController) ListLandingPages(w http.ResponseWriter, r *http.Request) {
	pages, err := c.LandingPageService.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch landing pages")
		return
	}
	httputil.OK(w, pages)
}

func (c *LandingPageController) GetLandingPage(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	page, err := c.LandingPageService.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch landing page")
		return
	}
	httputil.OK(w, page)
}

func (c *LandingPageController) GetBySession(w http.ResponseWriter, r *http.Request) {
	page, err := c.LandingPageService.GetBySession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch landing page")
		return
	}
	httputil.OK(w, page)
}

func (c *LandingPageController) CreateLandingPage(w http.ResponseWriter, r *http.Request) {
	var body service.LandingPageInput
	if !httputil.Decode(w, r, &body) {
		return
	}
	page, err := c.LandingPageService.Create(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err, "Failed to create landing page")
		return
	}
	httputil.Created(w, page)
}

func (c *LandingPageController) UpdateHeaderCode(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		HeaderCode string `json:"header_code"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	page, err := c.LandingPageService.UpdateHeaderCode(r.Context(), id, body.HeaderCode)
	if err != nil {
		httputil.WriteError(w, err, "Failed to save header code")
		return
	}
	httputil.OK(w, page)
}

func (c *LandingPageController) DeleteLandingPage(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	if err := c.LandingPageService.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err, "Failed to delete landing page")
		return
	}
	httputil.OK(w, map[string]any{"success": true})
}

// SendMessage relays one builder chat turn for the page's session.
func (c *LandingPageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	reply, err := c.LandingPageService.SendMessage(r.Context(), chi.URLParam(r, "sessionId"), body.Message)
	if err != nil {
		httputil.WriteError(w, err, "There was an error connecting to the AI service. Please try again later.")
		return
	}
	httputil.OK(w, reply)
}
