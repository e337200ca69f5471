package post

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/huddleup/teamfeed/internal/post/entity"
	"github.com/huddleup/teamfeed/pkg/utilities"
)

const (
	// MaxContentLen matches the client-side character counter, counted
	// on the raw (untrimmed) input so the two never disagree.
	MaxContentLen = 280

	DefaultFeedLimit = 50
)

// Repository is the storage port for posts and feed projections.
type Repository interface {
	Insert(ctx context.Context, p *entity.Post) error
	GlobalFeed(ctx context.Context, limit int) ([]entity.FeedItem, error)
	TeamFeed(ctx context.Context, teamID string, limit int) ([]entity.FeedItem, error)
}

// TeamResolver resolves the caller's team membership; satisfied by
// profile.Resolver.
type TeamResolver interface {
	ResolveTeam(ctx context.Context, accountID string) (string, error)
}

var (
	ErrEmptyContent   = errors.New("post content cannot be empty")
	ErrContentTooLong = errors.New("post content cannot exceed 280 characters")
)

// Service implements the post writer and the feed readback queries.
type Service struct {
	repo     Repository
	resolver TeamResolver
}

func NewService(repo Repository, resolver TeamResolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Create validates content, resolves the caller's team server-side and
// stores the trimmed text. The team id never comes from the request;
// the resolved profile is the only source of attribution. Validation
// runs before the profile lookup so a bad payload costs no round trip.
func (s *Service) Create(ctx context.Context, accountID, rawContent string) (string, error) {
	trimmed := strings.TrimSpace(rawContent)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(rawContent) > MaxContentLen {
		return "", ErrContentTooLong
	}
	teamID, err := s.resolver.ResolveTeam(ctx, accountID)
	if err != nil {
		return "", err
	}
	p := &entity.Post{
		ID:        utilities.NewSnowflakeID(),
		Content:   trimmed,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// GlobalFeed returns the newest posts across all teams. A non-positive
// limit falls back to DefaultFeedLimit.
func (s *Service) GlobalFeed(ctx context.Context, limit int) ([]entity.FeedItem, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.GlobalFeed(ctx, limit)
}

// TeamFeed returns the newest posts for one team.
func (s *Service) TeamFeed(ctx context.Context, teamID string, limit int) ([]entity.FeedItem, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.TeamFeed(ctx, teamID, limit)
}
