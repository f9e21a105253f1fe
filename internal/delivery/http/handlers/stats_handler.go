package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/tourze/ganet-tracking-service/internal/usecase"
)

// StatsHandler serves the back-office statistics endpoints.
type StatsHandler struct {
	Tags         usecase.RedirectTagUsecase
	Transactions usecase.TransactionTagUsecase
}

func NewStatsHandler(tags usecase.RedirectTagUsecase, transactions usecase.TransactionTagUsecase) *StatsHandler {
	return &StatsHandler{Tags: tags, Transactions: transactions}
}

// ClickStats returns per-date click counts.
// GET /api/publishers/{id}/clicks?start=<RFC3339>&end=<RFC3339>
func (h *StatsHandler) ClickStats(w http.ResponseWriter, r *http.Request) {
	publisherID := chi.URLParam(r, "id")
	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}

	stats, err := h.Tags.GetClickStats(publisherID, start, end)
	if err != nil {
		slog.Error("click stats failed", "publisher_id", publisherID, "error", err)
		writeError(w, http.StatusInternalServerError, "click stats failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CampaignClickStats returns per-campaign click counts.
// GET /api/publishers/{id}/campaign-clicks?start=<RFC3339>&end=<RFC3339>
func (h *StatsHandler) CampaignClickStats(w http.ResponseWriter, r *http.Request) {
	publisherID := chi.URLParam(r, "id")
	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}

	stats, err := h.Tags.GetCampaignClickStats(publisherID, start, end)
	if err != nil {
		slog.Error("campaign click stats failed", "publisher_id", publisherID, "error", err)
		writeError(w, http.StatusInternalServerError, "campaign click stats failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// PublisherConversionStats returns clicks, conversions and monetary totals.
// GET /api/publishers/{id}/conversions?start=<RFC3339>&end=<RFC3339>
func (h *StatsHandler) PublisherConversionStats(w http.ResponseWriter, r *http.Request) {
	publisherID := chi.URLParam(r, "id")
	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}

	stats, err := h.Transactions.GetPublisherConversionStats(publisherID, start, end)
	if err != nil {
		slog.Error("publisher conversion stats failed", "publisher_id", publisherID, "error", err)
		writeError(w, http.StatusInternalServerError, "publisher conversion stats failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// UserConversionStats returns a user's attributed transaction totals.
// GET /api/users/{id}/conversions
func (h *StatsHandler) UserConversionStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	stats, err := h.Transactions.GetUserConversionStats(userID)
	if err != nil {
		slog.Error("user conversion stats failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "user conversion stats failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be RFC3339")
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
