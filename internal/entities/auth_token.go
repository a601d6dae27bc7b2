package entities

import "time"

// AuthToken represents a persisted session token owned by exactly one user.
// At most one row exists per user; rotation overwrites the token fields in
// place and keeps the row id.
type AuthToken struct {
	ID        string    `json:"id"` // UUID
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"` // UUID, FK to users
}

// Expired reports whether the token's expiry timestamp has elapsed.
func (t *AuthToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
