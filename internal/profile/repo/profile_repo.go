package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/huddleup/teamfeed/internal/profile/entity"
)

// ProfileRepo provides data access for the profiles table using sqlx.
type ProfileRepo struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// EnsureTable creates the profiles table if not exists (idempotent).
// Rows are inserted by signup provisioning; this package only reads.
func (r *ProfileRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS profiles (
  id varchar(32) PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
  team_id varchar(32) NOT NULL REFERENCES teams(id)
);
CREATE INDEX IF NOT EXISTS idx_profiles_team_id ON profiles (team_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// GetByAccountID returns the profile row for an account or sql.ErrNoRows.
func (r *ProfileRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	const q = `SELECT id, team_id FROM profiles WHERE id=$1`
	var row entity.Profile
	if err := r.db.GetContext(ctx, &row, q, accountID); err != nil {
		return nil, err
	}
	return &row, nil
}
