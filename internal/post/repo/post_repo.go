package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/huddleup/teamfeed/internal/post/entity"
)

// PostRepo provides data access for the posts table using sqlx.
type PostRepo struct {
	db *sqlx.DB
}

func NewPostRepo(db *sqlx.DB) *PostRepo { return &PostRepo{db: db} }

// EnsureTable creates the posts table and feed indexes if not exists.
func (r *PostRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS posts (
  id varchar(32) PRIMARY KEY,
  content TEXT NOT NULL,
  team_id varchar(32) NOT NULL REFERENCES teams(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_posts_team_id ON posts (team_id);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at DESC);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Insert stores a new post row.
func (r *PostRepo) Insert(ctx context.Context, p *entity.Post) error {
	const q = `INSERT INTO posts (id, content, team_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Content, p.TeamID, p.CreatedAt)
	return err
}

const feedSelect = `SELECT p.id, p.content, p.created_at, t.id AS team_id, t.name AS team_name
	FROM posts p
	JOIN teams t ON t.id = p.team_id`

// GlobalFeed returns the newest posts across all teams with the owning
// team denormalized. Ties on created_at keep the store's natural order.
func (r *PostRepo) GlobalFeed(ctx context.Context, limit int) ([]entity.FeedItem, error) {
	const q = feedSelect + ` ORDER BY p.created_at DESC LIMIT $1`
	items := []entity.FeedItem{}
	if err := r.db.SelectContext(ctx, &items, q, limit); err != nil {
		return nil, err
	}
	return items, nil
}

// TeamFeed returns the newest posts for one team.
func (r *PostRepo) TeamFeed(ctx context.Context, teamID string, limit int) ([]entity.FeedItem, error) {
	const q = feedSelect + ` WHERE p.team_id = $1 ORDER BY p.created_at DESC LIMIT $2`
	items := []entity.FeedItem{}
	if err := r.db.SelectContext(ctx, &items, q, teamID, limit); err != nil {
		return nil, err
	}
	return items, nil
}
