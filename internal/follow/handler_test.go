package follow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huddleup/teamfeed/internal/account"
)

func followRequest(method, accountID, targetTeamID string) *http.Request {
	r := httptest.NewRequest(method, "/teamfeed-api/teams/"+targetTeamID+"/follow", nil)
	r.SetPathValue("id", targetTeamID)
	if accountID != "" {
		r = r.WithContext(account.WithAccountID(r.Context(), accountID))
	}
	return r
}

func TestFollowHandler(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.Follow(w, followRequest(http.MethodPost, "acct-a", "team-b"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["following"])
}

func TestFollowHandlerSelf(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.Follow(w, followRequest(http.MethodPost, "acct-a", "team-a"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowHandlerDuplicate(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.Follow(w, followRequest(http.MethodPost, "acct-a", "team-b"))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Follow(w, followRequest(http.MethodPost, "acct-a", "team-b"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.edges, 1)
}

func TestFollowHandlerUnauthenticated(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.Follow(w, followRequest(http.MethodPost, "", "team-b"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnfollowHandlerIdempotent(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	// unfollow with no edge present still succeeds
	w := httptest.NewRecorder()
	h.Unfollow(w, followRequest(http.MethodDelete, "acct-a", "team-b"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsFollowingHandlerPublic(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	// no identity at all answers false instead of failing
	w := httptest.NewRecorder()
	h.IsFollowing(w, followRequest(http.MethodGet, "", "team-b"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp["following"])
}

func TestCountHandlers(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.Follow(w, followRequest(http.MethodPost, "acct-a", "team-b"))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.FollowerCount(w, followRequest(http.MethodGet, "", "team-b"))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["count"])
}
