package models

import "time"

// UserIdentity is the minimal user projection attached to authenticated
// requests and returned from sign-in. Never carries the password hash or
// reset token.
type UserIdentity struct {
	ID    string `json:"id"` // UUID
	Email string `json:"email"`
}

// TokenResponse describes the session token handed to the client
type TokenResponse struct {
	ID        string    `json:"id"` // AuthToken row id, needed for sign-out
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignInResponse represents the response after successful sign-in
type SignInResponse struct {
	Authorized bool          `json:"authorized"`
	User       UserIdentity  `json:"user"`
	Token      TokenResponse `json:"token"`
}
