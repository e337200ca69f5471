package follow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddleup/teamfeed/internal/profile"
)

type edge struct{ follower, following string }

// memFollowRepo is an in-memory Repository enforcing the same pair
// uniqueness the database constraint does.
type memFollowRepo struct {
	edges map[edge]bool
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{edges: map[edge]bool{}}
}

func (m *memFollowRepo) Insert(ctx context.Context, followerID, followingID string) error {
	e := edge{followerID, followingID}
	if m.edges[e] {
		return ErrAlreadyFollowing
	}
	m.edges[e] = true
	return nil
}

func (m *memFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	delete(m.edges, edge{followerID, followingID})
	return nil
}

func (m *memFollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return m.edges[edge{followerID, followingID}], nil
}

func (m *memFollowRepo) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	ids := []string{}
	for e := range m.edges {
		if e.follower == followerID {
			ids = append(ids, e.following)
		}
	}
	return ids, nil
}

func (m *memFollowRepo) FollowerCount(ctx context.Context, teamID string) (int, error) {
	n := 0
	for e := range m.edges {
		if e.following == teamID {
			n++
		}
	}
	return n, nil
}

func (m *memFollowRepo) FollowingCount(ctx context.Context, teamID string) (int, error) {
	n := 0
	for e := range m.edges {
		if e.follower == teamID {
			n++
		}
	}
	return n, nil
}

// mapResolver resolves accounts to teams from a fixed map.
type mapResolver struct {
	teams map[string]string
}

func (r *mapResolver) ResolveTeam(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", profile.ErrUnauthenticated
	}
	teamID, ok := r.teams[accountID]
	if !ok {
		return "", profile.ErrProfileNotFound
	}
	return teamID, nil
}

func newTestService() (*Service, *memFollowRepo) {
	repo := newMemFollowRepo()
	resolver := &mapResolver{teams: map[string]string{
		"acct-a": "team-a",
		"acct-b": "team-b",
	}}
	return NewService(repo, resolver), repo
}

func TestFollowCreatesEdge(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "acct-a", "team-b"))
	assert.True(t, repo.edges[edge{"team-a", "team-b"}])

	following, err := svc.IsFollowing(ctx, "acct-a", "team-b")
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowSelfRejected(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Follow(context.Background(), "acct-a", "team-a")
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.Empty(t, repo.edges)
}

func TestFollowDuplicate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "acct-a", "team-b"))
	err := svc.Follow(ctx, "acct-a", "team-b")
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	// exactly one edge persists
	assert.Len(t, repo.edges, 1)
}

func TestFollowUnauthenticated(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Follow(context.Background(), "", "team-b")
	assert.ErrorIs(t, err, profile.ErrUnauthenticated)
}

func TestFollowProfileNotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Follow(context.Background(), "acct-unknown", "team-b")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "acct-a", "team-b"))

	require.NoError(t, svc.Unfollow(ctx, "acct-a", "team-b"))
	following, err := svc.IsFollowing(ctx, "acct-a", "team-b")
	require.NoError(t, err)
	assert.False(t, following)

	// second unfollow of the now-absent edge still succeeds
	require.NoError(t, svc.Unfollow(ctx, "acct-a", "team-b"))
}

func TestIsFollowingUnauthenticated(t *testing.T) {
	svc, _ := newTestService()

	following, err := svc.IsFollowing(context.Background(), "", "team-b")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowingIDs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "acct-a", "team-b"))
	require.NoError(t, svc.Follow(ctx, "acct-a", "team-c"))

	ids, err := svc.FollowingIDs(ctx, "acct-a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"team-b", "team-c"}, ids)
}

func TestFollowingIDsUnauthenticated(t *testing.T) {
	svc, _ := newTestService()

	ids, err := svc.FollowingIDs(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCounts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "acct-a", "team-c"))
	require.NoError(t, svc.Follow(ctx, "acct-b", "team-c"))
	require.NoError(t, svc.Follow(ctx, "acct-a", "team-b"))

	followers, err := svc.FollowerCount(ctx, "team-c")
	require.NoError(t, err)
	assert.Equal(t, 2, followers)

	following, err := svc.FollowingCount(ctx, "team-a")
	require.NoError(t, err)
	assert.Equal(t, 2, following)

	// a team with no edges reports zero, not an error
	none, err := svc.FollowerCount(ctx, "team-a")
	require.NoError(t, err)
	assert.Zero(t, none)
}
