package entity

// Profile binds an account to the single team it acts on behalf of.
// Rows are created by signup provisioning, never by the feed code.
type Profile struct {
	ID     string `db:"id" json:"id"`
	TeamID string `db:"team_id" json:"team_id"`
}
