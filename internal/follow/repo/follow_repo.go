package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/huddleup/teamfeed/internal/follow"
)

// uniqueViolation is the Postgres error code for a uniqueness conflict.
const uniqueViolation = "23505"

// FollowRepo provides data access for the team_follows table.
type FollowRepo struct {
	db *sqlx.DB
}

func NewFollowRepo(db *sqlx.DB) *FollowRepo { return &FollowRepo{db: db} }

// EnsureTable creates the team_follows table if not exists. The primary
// key on (follower_id, following_id) is what arbitrates concurrent
// duplicate follows.
func (r *FollowRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS team_follows (
  follower_id varchar(32) NOT NULL REFERENCES teams(id),
  following_id varchar(32) NOT NULL REFERENCES teams(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  PRIMARY KEY (follower_id, following_id)
);
CREATE INDEX IF NOT EXISTS idx_team_follows_following_id ON team_follows (following_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Insert creates an edge. A duplicate ordered pair maps the store's
// conflict signal to follow.ErrAlreadyFollowing.
func (r *FollowRepo) Insert(ctx context.Context, followerID, followingID string) error {
	const q = `INSERT INTO team_follows (follower_id, following_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, q, followerID, followingID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return follow.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Delete removes the edge; deleting zero rows is not an error.
func (r *FollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	const q = `DELETE FROM team_follows WHERE follower_id=$1 AND following_id=$2`
	_, err := r.db.ExecContext(ctx, q, followerID, followingID)
	return err
}

// Exists reports whether the edge is present.
func (r *FollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM team_follows WHERE follower_id=$1 AND following_id=$2)`
	var found bool
	if err := r.db.GetContext(ctx, &found, q, followerID, followingID); err != nil {
		return false, err
	}
	return found, nil
}

// FollowingIDs returns the target team ids of all edges out of followerID.
func (r *FollowRepo) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	const q = `SELECT following_id FROM team_follows WHERE follower_id=$1`
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, q, followerID); err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerCount counts edges into teamID.
func (r *FollowRepo) FollowerCount(ctx context.Context, teamID string) (int, error) {
	const q = `SELECT COUNT(*) FROM team_follows WHERE following_id=$1`
	var n int
	if err := r.db.GetContext(ctx, &n, q, teamID); err != nil {
		return 0, err
	}
	return n, nil
}

// FollowingCount counts edges out of teamID.
func (r *FollowRepo) FollowingCount(ctx context.Context, teamID string) (int, error) {
	const q = `SELECT COUNT(*) FROM team_follows WHERE follower_id=$1`
	var n int
	if err := r.db.GetContext(ctx, &n, q, teamID); err != nil {
		return 0, err
	}
	return n, nil
}
