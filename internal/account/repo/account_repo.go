package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/huddleup/teamfeed/internal/account"
	"github.com/huddleup/teamfeed/internal/account/entity"
)

const uniqueViolation = "23505"

// AccountRepo provides data access for the accounts table using sqlx.
type AccountRepo struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// EnsureTable creates the accounts table if not exists (idempotent).
func (r *AccountRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE EXTENSION IF NOT EXISTS citext;
CREATE TABLE IF NOT EXISTS accounts (
  id varchar(32) PRIMARY KEY,
  email CITEXT UNIQUE NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Provision creates the account together with its team and profile in a
// single transaction. The original design did this with a database
// trigger on signup; doing it here keeps the same contract: after a
// successful signup exactly one team and one profile exist for the
// account. A duplicate email maps to account.ErrEmailTaken.
func (r *AccountRepo) Provision(ctx context.Context, a *entity.Account, teamID, teamName string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const insAccount = `INSERT INTO accounts (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insAccount, a.ID, a.Email, a.PasswordHash, a.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return account.ErrEmailTaken
		}
		return err
	}
	const insTeam = `INSERT INTO teams (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insTeam, teamID, teamName, a.CreatedAt); err != nil {
		return err
	}
	const insProfile = `INSERT INTO profiles (id, team_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, insProfile, a.ID, teamID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByEmail returns an account matched by email (case-insensitive due
// to citext) or sql.ErrNoRows.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	const q = `SELECT id, email, password_hash, created_at FROM accounts WHERE email=$1`
	var row entity.Account
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		return nil, err
	}
	return &row, nil
}
