package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/huddleup/teamfeed/internal/account"
	"github.com/huddleup/teamfeed/internal/profile"
)

// Handler exposes HTTP endpoints for posting and the public feeds.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the request body for POST /posts. There is no team
// field on purpose; attribution comes from the caller's profile.
type CreateRequest struct {
	Content string `json:"content"`
}

// CreateResponse carries the new post id.
type CreateResponse struct {
	ID string `json:"id"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid post payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	id, err := h.svc.Create(r.Context(), account.AccountID(r.Context()), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "post content cannot be empty"})
		case errors.Is(err, ErrContentTooLong):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "post content cannot exceed 280 characters"})
		case errors.Is(err, profile.ErrUnauthenticated):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "you must be logged in to post"})
		case errors.Is(err, profile.ErrProfileNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found, please try again shortly"})
		default:
			h.logger.Errorw("create post failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		}
		return
	}
	h.writeJSON(w, http.StatusCreated, CreateResponse{ID: id})
}

// GlobalFeed handles GET /feed.
func (h *Handler) GlobalFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GlobalFeed(r.Context(), limitParam(r))
	if err != nil {
		h.logger.Errorw("global feed failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// TeamFeed handles GET /teams/{id}/posts.
func (h *Handler) TeamFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.TeamFeed(r.Context(), r.PathValue("id"), limitParam(r))
	if err != nil {
		h.logger.Errorw("team feed failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// limitParam parses the optional ?limit= query value; anything invalid
// yields 0, which the service replaces with the default.
func limitParam(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
