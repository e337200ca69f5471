package team

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huddleup/teamfeed/internal/team/entity"
)

// Repository is the storage port for team readback.
type Repository interface {
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	List(ctx context.Context) ([]*entity.Team, error)
}

// TeamResolver resolves the caller's team membership; satisfied by
// profile.Resolver.
type TeamResolver interface {
	ResolveTeam(ctx context.Context, accountID string) (string, error)
}

var ErrNotFound = errors.New("team not found")

// Service exposes the public team readback queries. All reads are
// public; only MyTeam needs the caller's identity.
type Service struct {
	repo     Repository
	resolver TeamResolver
}

func NewService(repo Repository, resolver TeamResolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Get returns a team by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.Team, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all teams, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Team, error) {
	return s.repo.List(ctx)
}

// MyTeam resolves the caller's team and returns the full row.
// Propagates profile.ErrUnauthenticated / profile.ErrProfileNotFound.
func (s *Service) MyTeam(ctx context.Context, accountID string) (*entity.Team, error) {
	teamID, err := s.resolver.ResolveTeam(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, teamID)
}
