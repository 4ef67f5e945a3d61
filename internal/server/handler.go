package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"news_cache/internal/domain"
)

// Error catalog codes, kept stable for clients.
const (
	codeInvalidParameters = "NEWS_MS_001"
	codeInternalError     = "NEWS_MS_002"
	codeNewsPending       = "NEWS_MS_201"
)

// NewsLookup is the read operation served by this handler.
type NewsLookup interface {
	Lookup(ctx context.Context, date string) (*domain.NewsSnapshot, error)
}

// DataResponse wraps a successful lookup.
type DataResponse struct {
	Message string               `json:"message"`
	Success bool                 `json:"success"`
	Data    *domain.NewsSnapshot `json:"data"`
}

// ErrorResponse is the unified error envelope.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type NewsHandler struct {
	lookup NewsLookup
	logger *slog.Logger
}

func NewNewsHandler(lookup NewsLookup, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		lookup: lookup,
		logger: logger,
	}
}

// GetNews handles GET /api/v1/news?date=YYYY-MM-DD. The caller always gets
// one of: data, "retry later", "invalid date" or "internal error" — raw
// provider and infrastructure errors never leak.
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	snapshot, err := h.lookup.Lookup(r.Context(), date)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, DataResponse{
			Message: "data found",
			Success: true,
			Data:    snapshot,
		})
	case errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, codeInvalidParameters,
			"date must be a non-empty string in YYYY-MM-DD format")
	case errors.Is(err, domain.ErrNotYetAvailable):
		writeError(w, http.StatusAccepted, codeNewsPending,
			"the requested news is not yet available; the request is being processed, retry in a few seconds")
	default:
		h.logger.Error("lookup failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError,
			"internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: APIError{
			Code:      code,
			Message:   message,
			Timestamp: time.Now().UTC(),
		},
	})
}
