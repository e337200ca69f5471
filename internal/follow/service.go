package follow

import (
	"context"
	"errors"

	"github.com/huddleup/teamfeed/internal/profile"
)

// Repository is the storage port for the follow graph. Insert must
// report a duplicate ordered pair as ErrAlreadyFollowing so concurrent
// follow attempts are arbitrated by the store's uniqueness constraint,
// never by a pre-check that could race.
type Repository interface {
	Insert(ctx context.Context, followerID, followingID string) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
	FollowerCount(ctx context.Context, teamID string) (int, error)
	FollowingCount(ctx context.Context, teamID string) (int, error)
}

// TeamResolver resolves the caller's team membership; satisfied by
// profile.Resolver.
type TeamResolver interface {
	ResolveTeam(ctx context.Context, accountID string) (string, error)
}

var (
	ErrSelfFollow       = errors.New("cannot follow your own team")
	ErrAlreadyFollowing = errors.New("already following this team")
)

// Service enforces the two invariants on the follow graph at the write
// boundary: no self-follow, and at most one edge per ordered pair.
type Service struct {
	repo     Repository
	resolver TeamResolver
}

func NewService(repo Repository, resolver TeamResolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Follow creates an edge from the caller's team to the target team.
// A duplicate edge surfaces as ErrAlreadyFollowing, which callers treat
// as a benign no-op rather than a failure.
func (s *Service) Follow(ctx context.Context, accountID, targetTeamID string) error {
	teamID, err := s.resolver.ResolveTeam(ctx, accountID)
	if err != nil {
		return err
	}
	if teamID == targetTeamID {
		return ErrSelfFollow
	}
	return s.repo.Insert(ctx, teamID, targetTeamID)
}

// Unfollow removes the edge unconditionally. Deleting zero rows is
// success, so a second unfollow is a no-op.
func (s *Service) Unfollow(ctx context.Context, accountID, targetTeamID string) error {
	teamID, err := s.resolver.ResolveTeam(ctx, accountID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, teamID, targetTeamID)
}

// IsFollowing reports whether the caller's team follows the target.
// Missing identity or profile yields false, not an error.
func (s *Service) IsFollowing(ctx context.Context, accountID, targetTeamID string) (bool, error) {
	teamID, err := s.resolver.ResolveTeam(ctx, accountID)
	if err != nil {
		if noCallerTeam(err) {
			return false, nil
		}
		return false, err
	}
	return s.repo.Exists(ctx, teamID, targetTeamID)
}

// FollowingIDs returns the ids of teams the caller's team follows.
// Missing identity or profile yields an empty set.
func (s *Service) FollowingIDs(ctx context.Context, accountID string) ([]string, error) {
	teamID, err := s.resolver.ResolveTeam(ctx, accountID)
	if err != nil {
		if noCallerTeam(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return s.repo.FollowingIDs(ctx, teamID)
}

// noCallerTeam reports whether err just means the caller has no
// resolvable team yet; the read queries answer false/empty for that.
func noCallerTeam(err error) bool {
	return errors.Is(err, profile.ErrUnauthenticated) || errors.Is(err, profile.ErrProfileNotFound)
}

// FollowerCount returns the number of teams following teamID. Public.
func (s *Service) FollowerCount(ctx context.Context, teamID string) (int, error) {
	return s.repo.FollowerCount(ctx, teamID)
}

// FollowingCount returns the number of teams teamID follows. Public.
func (s *Service) FollowingCount(ctx context.Context, teamID string) (int, error) {
	return s.repo.FollowingCount(ctx, teamID)
}
