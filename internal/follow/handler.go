package follow

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/huddleup/teamfeed/internal/account"
	"github.com/huddleup/teamfeed/internal/profile"
)

// Handler exposes HTTP endpoints for the follow graph.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Follow handles POST /teams/{id}/follow.
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Follow(r.Context(), account.AccountID(r.Context()), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot follow your own team"})
		case errors.Is(err, ErrAlreadyFollowing):
			// benign; the UI leaves its state unchanged
			h.writeJSON(w, http.StatusConflict, map[string]string{"error": "already following this team"})
		case errors.Is(err, profile.ErrUnauthenticated):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "you must be logged in to follow teams"})
		case errors.Is(err, profile.ErrProfileNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found, please try again shortly"})
		default:
			h.logger.Errorw("follow failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"following": true})
}

// Unfollow handles DELETE /teams/{id}/follow.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Unfollow(r.Context(), account.AccountID(r.Context()), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrUnauthenticated):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "you must be logged in to unfollow teams"})
		case errors.Is(err, profile.ErrProfileNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found, please try again shortly"})
		default:
			h.logger.Errorw("unfollow failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"following": false})
}

// IsFollowing handles GET /teams/{id}/follow.
func (h *Handler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.svc.IsFollowing(r.Context(), account.AccountID(r.Context()), r.PathValue("id"))
	if err != nil {
		h.logger.Errorw("is-following check failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"following": following})
}

// Following handles GET /me/following.
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.FollowingIDs(r.Context(), account.AccountID(r.Context()))
	if err != nil {
		h.logger.Errorw("following ids failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"following": ids})
}

// FollowerCount handles GET /teams/{id}/followers/count.
func (h *Handler) FollowerCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.FollowerCount(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Errorw("follower count failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// FollowingCount handles GET /teams/{id}/following/count.
func (h *Handler) FollowingCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.FollowingCount(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Errorw("following count failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
