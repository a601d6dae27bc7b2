package repository

import (
	"database/sql"
	"fmt"
	"time"

	"market-helper-be/internal/entities"
)

// AuthTokenRepository defines the interface for session token rows
type AuthTokenRepository interface {
	FindByUser(userID string) (*entities.AuthToken, error)
	FindByToken(token string) (*entities.AuthToken, error)
	Upsert(id, userID, token string, issuedAt, expiresAt time.Time) (*entities.AuthToken, error)
	Delete(id, userID string) error
	DeleteAll() error
}

type authTokenRepository struct {
	db *sql.DB
}

// NewAuthTokenRepository creates a new auth token repository
func NewAuthTokenRepository(db *sql.DB) AuthTokenRepository {
	return &authTokenRepository{db: db}
}

const authTokenColumns = "id, token, issued_at, expires_at, user_id"

func scanAuthToken(row *sql.Row) (*entities.AuthToken, error) {
	var t entities.AuthToken
	err := row.Scan(&t.ID, &t.Token, &t.IssuedAt, &t.ExpiresAt, &t.UserID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan auth token: %w", err)
	}
	return &t, nil
}

// FindByUser returns the most recent token row owned by the user. The schema
// keeps at most one row per user, but ordering makes this correct against a
// database predating that constraint.
func (r *authTokenRepository) FindByUser(userID string) (*entities.AuthToken, error) {
	query := `
		SELECT ` + authTokenColumns + `
		FROM auth_tokens
		WHERE user_id = $1
		ORDER BY issued_at DESC
		LIMIT 1
	`
	return scanAuthToken(r.db.QueryRow(query, userID))
}

// FindByToken finds a token row by its exact token string
func (r *authTokenRepository) FindByToken(token string) (*entities.AuthToken, error) {
	query := `SELECT ` + authTokenColumns + ` FROM auth_tokens WHERE token = $1`
	return scanAuthToken(r.db.QueryRow(query, token))
}

// Upsert creates the user's token row or rotates it in place. The conflict
// target is the UNIQUE(user_id) constraint, so two concurrent sign-ins
// serialize on the store: the row id survives rotation and both callers get
// back whatever token won.
func (r *authTokenRepository) Upsert(id, userID, token string, issuedAt, expiresAt time.Time) (*entities.AuthToken, error) {
	query := `
		INSERT INTO auth_tokens (id, token, issued_at, expires_at, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token,
		    issued_at = EXCLUDED.issued_at,
		    expires_at = EXCLUDED.expires_at
		RETURNING ` + authTokenColumns

	t, err := scanAuthToken(r.db.QueryRow(query, id, token, issuedAt, expiresAt, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert auth token: %w", err)
	}
	return t, nil
}

// Delete removes the token row matching both id and owner. Requiring both
// keeps one user from revoking another's session by guessing row ids.
func (r *authTokenRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM auth_tokens WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll removes every token row (bulk wipe)
func (r *authTokenRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM auth_tokens`); err != nil {
		return fmt.Errorf("failed to delete auth tokens: %w", err)
	}
	return nil
}
