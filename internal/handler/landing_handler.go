package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

// LandingHandler serves published landing pages as plain HTML.
type LandingHandler struct {
	Service *service.LandingPageService
}

func (h *LandingHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	html, err := h.Service.Render(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		var nf *appErrors.NotFoundError
		if errors.As(err, &nf) {
			http.Error(w, "Landing page not found", http.StatusNotFound)
			return
		}
		slog.Error("landing page render failed", "error", err, "request_id", requestID(r))
		http.Error(w, "Failed to load landing page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
