package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID                 string    `json:"id"` // UUID
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"` // Don't expose password hash in JSON
	PasswordResetToken *string   `json:"-"` // Single active reset token, nil when none issued
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
