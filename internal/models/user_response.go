package models

import "time"

// UserResponse is the public projection of a user row
type UserResponse struct {
	ID        string    `json:"id"` // UUID
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
