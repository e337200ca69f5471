package entity

import "time"

// Team is the unit posts are attributed to. Each signup provisions one
// team; the schema permits several profiles per team but nothing in the
// service relies on that.
type Team struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
