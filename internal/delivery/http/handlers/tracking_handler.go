package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/usecase"
	redirecttagdto "github.com/tourze/ganet-tracking-service/internal/usecase/dto/redirecttag"
)

// TrackingHandler serves the click entry point and tag lookups.
type TrackingHandler struct {
	Tags   usecase.RedirectTagUsecase
	TagTTL time.Duration
}

func NewTrackingHandler(tags usecase.RedirectTagUsecase, tagTTL time.Duration) *TrackingHandler {
	return &TrackingHandler{Tags: tags, TagTTL: tagTTL}
}

type trackingURLRequest struct {
	PublisherID string  `json:"publisher_id"`
	CampaignID  *string `json:"campaign_id,omitempty"`
	UserID      *string `json:"user_id,omitempty"`
	TargetURL   string  `json:"target_url"`
}

type trackingURLResponse struct {
	Tag         string `json:"tag"`
	TrackingURL string `json:"tracking_url"`
}

// CreateTrackingURL issues a tracking URL for an API caller.
// POST /api/tracking-urls
func (h *TrackingHandler) CreateTrackingURL(w http.ResponseWriter, r *http.Request) {
	var req trackingURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.Tags.GenerateTrackingURL(&redirecttagdto.GenerateTrackingURLInput{
		CreateRedirectTagInput: redirecttagdto.CreateRedirectTagInput{
			PublisherID: req.PublisherID,
			CampaignID:  req.CampaignID,
			UserID:      req.UserID,
			ExpireTime:  h.expireTime(),
			Request:     captureRequestContext(r),
		},
		TargetURL: req.TargetURL,
	})
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, trackingURLResponse{
		Tag:         output.Tag,
		TrackingURL: output.TrackingURL,
	})
}

// Redirect handles an inbound click: creates the redirect tag and sends the
// visitor to the target URL with the tag appended.
// GET /r?pid=<publisher>&url=<target>[&cid=<campaign>][&uid=<user>]
func (h *TrackingHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := &redirecttagdto.GenerateTrackingURLInput{
		CreateRedirectTagInput: redirecttagdto.CreateRedirectTagInput{
			PublisherID: query.Get("pid"),
			ExpireTime:  h.expireTime(),
			Request:     captureRequestContext(r),
		},
		TargetURL: query.Get("url"),
	}
	if cid := query.Get("cid"); cid != "" {
		input.CampaignID = &cid
	}
	if uid := query.Get("uid"); uid != "" {
		input.UserID = &uid
	}

	output, err := h.Tags.GenerateTrackingURL(input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	http.Redirect(w, r, output.TrackingURL, http.StatusFound)
}

// GetTag resolves a tag value. ?active=true restricts to non-expired tags,
// the lookup used for attribution.
// GET /api/tags/{tag}
func (h *TrackingHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	tagValue := chi.URLParam(r, "tag")

	var (
		redirectTag *domain.RedirectTag
		err         error
	)
	if r.URL.Query().Get("active") == "true" {
		redirectTag, err = h.Tags.FindActiveByTag(tagValue)
	} else {
		redirectTag, err = h.Tags.FindByTag(tagValue)
	}
	if err != nil {
		slog.Error("tag lookup failed", "tag", tagValue, "error", err)
		writeError(w, http.StatusInternalServerError, "tag lookup failed")
		return
	}
	if redirectTag == nil {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}

	writeJSON(w, http.StatusOK, redirectTag)
}

type attachUserRequest struct {
	UserID  string             `json:"user_id"`
	Context domain.ContextData `json:"context,omitempty"`
}

// AttachUser backfills a user id onto an active tag, e.g. after the visitor
// registered.
// POST /api/tags/{tag}/user
func (h *TrackingHandler) AttachUser(w http.ResponseWriter, r *http.Request) {
	tagValue := chi.URLParam(r, "tag")

	var req attachUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	updated, err := h.Tags.UpdateTagWithUserInfo(tagValue, req.UserID, req.Context)
	if err != nil {
		slog.Error("attach user failed", "tag", tagValue, "error", err)
		writeError(w, http.StatusInternalServerError, "attach user failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

type cleanupRequest struct {
	Before *time.Time `json:"before,omitempty"`
}

// Cleanup runs the expiry sweep.
// POST /api/tags/cleanup
func (h *TrackingHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	removed, err := h.Tags.CleanupExpiredTags(req.Before)
	if err != nil {
		slog.Error("cleanup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (h *TrackingHandler) expireTime() *time.Time {
	if h.TagTTL <= 0 {
		return nil
	}
	expire := time.Now().Add(h.TagTTL)
	return &expire
}
