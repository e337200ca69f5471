package team

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/huddleup/teamfeed/internal/account"
	"github.com/huddleup/teamfeed/internal/profile"
)

// Handler exposes HTTP endpoints for team readback.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /teams.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list teams failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, teams)
}

// Get handles GET /teams/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "team not found"})
			return
		}
		h.logger.Errorw("get team failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

// MyTeam handles GET /me/team.
func (h *Handler) MyTeam(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.MyTeam(r.Context(), account.AccountID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrUnauthenticated):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "you must be logged in"})
		case errors.Is(err, profile.ErrProfileNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found, please try again shortly"})
		case errors.Is(err, ErrNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "team not found"})
		default:
			h.logger.Errorw("my team lookup failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please try again"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
