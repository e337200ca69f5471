package profile

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddleup/teamfeed/internal/profile/entity"
)

// memProfileRepo is an in-memory Repository for tests.
type memProfileRepo struct {
	teams map[string]string // account id -> team id
	err   error
}

func (m *memProfileRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	teamID, ok := m.teams[accountID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &entity.Profile{ID: accountID, TeamID: teamID}, nil
}

func TestResolveTeam(t *testing.T) {
	repo := &memProfileRepo{teams: map[string]string{"acct-1": "team-1"}}
	r := NewResolver(repo)

	teamID, err := r.ResolveTeam(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "team-1", teamID)
}

func TestResolveTeamUnauthenticated(t *testing.T) {
	r := NewResolver(&memProfileRepo{teams: map[string]string{}})

	_, err := r.ResolveTeam(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveTeamProfileNotFound(t *testing.T) {
	// an authenticated account whose provisioning has not landed yet
	r := NewResolver(&memProfileRepo{teams: map[string]string{}})

	_, err := r.ResolveTeam(context.Background(), "acct-unprovisioned")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestResolveTeamStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	r := NewResolver(&memProfileRepo{err: storeErr})

	_, err := r.ResolveTeam(context.Background(), "acct-1")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}
