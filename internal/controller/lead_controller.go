package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/unclebandit/marketing-ops-backend/internal/httputil"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

type LeadController struct {
	LeadService *service.LeadService
}

func (c *LeadController) ListLeads(w http.ResponseWriter, r *http.Request) {
	list, err := c.LeadService.List(r.Context(), r.URL.Query().Get("campaign_id"))
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch leads")
		return
	}
	httputil.OK(w, list)
}

// ExportLeads streams the filtered leads as a CSV download.
func (c *LeadController) ExportLeads(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.LeadService.Export(r.Context(), r.URL.Query().Get("campaign_id"), &buf); err != nil {
		httputil.WriteError(w, err, "Failed to export leads")
		return
	}

	name := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
