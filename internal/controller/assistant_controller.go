package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/marketing-ops-backend/internal/httputil"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

// AssistantController serves the automation side of the dashboard: the
// marketing chat, lead flow launches and workflow execution logs.
type AssistantController struct {
	ChatService *service.ChatService
	FlowService *service.FlowService
	LogService  *service.LogService
}

func (c *AssistantController) Chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	reply, err := c.ChatService.Chat(r.Context(), body.Message, body.SessionID)
	if err != nil {
		httputil.WriteError(w, err, "There was an error connecting to the AI service. Please try again later.")
		return
	}
	httputil.OK(w, reply)
}

func (c *AssistantController) LaunchLeadsFlow(w http.ResponseWriter, r *http.Request) {
	var body service.LeadsFlowInput
	if !httputil.Decode(w, r, &body) {
		return
	}
	res, err := c.FlowService.LaunchLeads(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err, "Failed to launch campaign. Please try again.")
		return
	}
	httputil.OK(w, res)
}

func (c *AssistantController) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	flow := q.Get("flow")
	entries, err := c.LogService.List(r.Context(), service.LogFilter{
		Flow:   flow,
		Search: q.Get("search"),
		Level:  q.Get("level"),
	})
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch logs from API")
		return
	}
	httputil.OK(w, map[string]any{
		"logs":  entries,
		"total": len(entries),
	})
}

func (c *AssistantController) GetLog(w http.ResponseWriter, r *http.Request) {
	detail, err := c.LogService.Get(r.Context(), r.URL.Query().Get("flow"), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch execution details")
		return
	}
	httputil.OK(w, detail)
}
