package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
)

// ErrorResponse is the error envelope for every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError logs the real error and answers with a generic message.
func InternalError(w http.ResponseWriter, err error) {
	slog.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "Internal server error")
}

// WriteError maps the appErrors types onto status codes. Upstream failures
// are logged and reported with fallback, never with the upstream body.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	var (
		validation *appErrors.ValidationError
		notFound   *appErrors.NotFoundError
		conflict   *appErrors.ConflictError
		upstream   *appErrors.UpstreamError
	)
	switch {
	case errors.As(err, &validation):
		BadRequest(w, validation.Message)
	case errors.As(err, &notFound):
		NotFound(w, notFound.Error())
	case errors.As(err, &conflict):
		Error(w, http.StatusConflict, conflict.Message)
	case errors.As(err, &upstream):
		slog.Error("upstream call failed", "service", upstream.Service, "status", upstream.StatusCode, "error", upstream.Err)
		Error(w, http.StatusBadGateway, fallback)
	default:
		slog.Error("request failed", "error", err)
		Error(w, http.StatusInternalServerError, fallback)
	}
}

// Decode reads JSON from the request body into dst. It writes a 400 and
// returns false when the body does not parse.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
