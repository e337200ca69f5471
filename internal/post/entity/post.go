package entity

import "time"

// Post is a short text update attributed to a team. Posts are never
// updated or deleted once written.
type Post struct {
	ID        string    `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	TeamID    string    `db:"team_id" json:"team_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FeedItem is a post projected with its owning team denormalized for
// display, matching what the feed pages render.
type FeedItem struct {
	ID        string    `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	TeamID    string    `db:"team_id" json:"team_id"`
	TeamName  string    `db:"team_name" json:"team_name"`
}
