package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/huddleup/teamfeed/internal/team/entity"
)

// TeamRepo is the repository for the teams table backed by PostgreSQL.
type TeamRepo struct {
	db *sqlx.DB
}

func NewTeamRepo(db *sqlx.DB) *TeamRepo { return &TeamRepo{db: db} }

// EnsureTable ensures the teams table exists. Uses to_regclass so the
// check works on Postgres without relying on IF NOT EXISTS everywhere.
func (r *TeamRepo) EnsureTable(ctx context.Context) error {
	var tblName sql.NullString
	if err := r.db.QueryRowContext(ctx, "SELECT to_regclass('public.teams')").Scan(&tblName); err != nil {
		return err
	}
	if tblName.Valid {
		return nil
	}
	const ddl = `CREATE TABLE teams (
		id varchar(32) PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// GetByID returns a team or sql.ErrNoRows.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	const q = `SELECT id, name, created_at FROM teams WHERE id=$1`
	var row entity.Team
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all teams, newest first.
func (r *TeamRepo) List(ctx context.Context) ([]*entity.Team, error) {
	const q = `SELECT id, name, created_at FROM teams ORDER BY created_at DESC`
	rows := []*entity.Team{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
