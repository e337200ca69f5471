package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huddleup/teamfeed/internal/account"
	"github.com/huddleup/teamfeed/internal/profile"
)

func newTestHandler(resolver TeamResolver) (*Handler, *memPostRepo) {
	repo := newMemPostRepo()
	return NewHandler(NewService(repo, resolver), zap.NewNop().Sugar()), repo
}

func postJSON(body string, accountID string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/teamfeed-api/posts", strings.NewReader(body))
	if accountID != "" {
		r = r.WithContext(account.WithAccountID(r.Context(), accountID))
	}
	return r
}

func TestCreateHandler(t *testing.T) {
	h, repo := newTestHandler(&staticResolver{teamID: "team-1"})

	w := httptest.NewRecorder()
	h.Create(w, postJSON(`{"content": "  hello  "}`, "acct-1"))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp CreateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	require.Len(t, repo.posts, 1)
	assert.Equal(t, "hello", repo.posts[0].Content)
}

func TestCreateHandlerUnauthenticated(t *testing.T) {
	h, repo := newTestHandler(&staticResolver{err: profile.ErrUnauthenticated})

	w := httptest.NewRecorder()
	h.Create(w, postJSON(`{"content": "hello"}`, ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, repo.posts)
}

func TestCreateHandlerValidation(t *testing.T) {
	h, _ := newTestHandler(&staticResolver{teamID: "team-1"})

	w := httptest.NewRecorder()
	h.Create(w, postJSON(`{"content": "   "}`, "acct-1"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	h.Create(w, postJSON(`{"content": "`+strings.Repeat("a", 281)+`"}`, "acct-1"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	h.Create(w, postJSON(`not json`, "acct-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateHandlerProfileNotFound(t *testing.T) {
	h, _ := newTestHandler(&staticResolver{err: profile.ErrProfileNotFound})

	w := httptest.NewRecorder()
	h.Create(w, postJSON(`{"content": "hello"}`, "acct-1"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGlobalFeedHandler(t *testing.T) {
	h, repo := newTestHandler(&staticResolver{teamID: "team-1"})
	seedFeed(t, repo, "team-1", 3)

	r := httptest.NewRequest(http.MethodGet, "/teamfeed-api/feed?limit=2", nil)
	w := httptest.NewRecorder()
	h.GlobalFeed(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}
