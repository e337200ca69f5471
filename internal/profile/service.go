package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huddleup/teamfeed/internal/profile/entity"
)

// Repository is the storage port for profile lookups. The sqlx
// implementation lives in repo; tests substitute an in-memory fake.
type Repository interface {
	GetByAccountID(ctx context.Context, accountID string) (*entity.Profile, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrProfileNotFound = errors.New("profile not found")
)

// Resolver maps an authenticated account to its team. Every mutating
// operation in the service goes through it so team attribution is
// always derived server-side from the caller's identity.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver { return &Resolver{repo: repo} }

// ResolveTeam returns the team id bound to the account. ErrProfileNotFound
// covers the window right after signup where provisioning has not landed
// yet; callers surface it as a retryable condition, not a fatal one.
func (s *Resolver) ResolveTeam(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", ErrUnauthenticated
	}
	p, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	return p.TeamID, nil
}
