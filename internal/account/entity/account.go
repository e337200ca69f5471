package entity

import "time"

// Account is an authenticated identity row in the accounts table.
// Team membership lives on the profile, not here.
type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Session is a persisted refresh session keyed by its opaque token.
type Session struct {
	Token     string    `db:"token"`
	AccountID string    `db:"account_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
