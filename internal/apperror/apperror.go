// Package apperror defines the application error taxonomy. Services return
// *AppError values; controllers map them to HTTP responses. Operator-facing
// detail travels in the wrapped error, never in the response body.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a category of application error
type Code int

const (
	// ServerError is the catch-all for store and infrastructure failures
	ServerError Code = iota
	// InvalidCredentials covers both unknown email and wrong password at
	// sign-in. The two cases must be indistinguishable to the caller.
	InvalidCredentials
	// Unauthenticated means no token was presented, the token string is
	// unknown to the store, or the owning user is missing
	Unauthenticated
	// TokenExpired means the presented token verified but its expiry elapsed
	TokenExpired
	// TokenInvalid means the presented token failed signature or claim checks
	TokenInvalid
	// NotFound covers both absent resources and resources owned by someone
	// else. Ownership failures never answer 403.
	NotFound
	// Conflict means a uniqueness constraint was hit (e.g. duplicate email)
	Conflict
	// EmailDeliveryFailed means the reset email could not be handed off.
	// Distinguished from TokenPersistError for diagnostics only; both are 500.
	EmailDeliveryFailed
	// TokenPersistError means a token row or reset-token field could not be written
	TokenPersistError
)

// String returns the wire identifier for the code. TokenExpired stays
// distinct from TokenInvalid so a client can prompt re-auth. Operator-only
// distinctions (EmailDeliveryFailed, TokenPersistError) collapse to
// SERVER_ERROR on the wire.
func (c Code) String() string {
	switch c {
	case InvalidCredentials:
		return "INVALID_CREDENTIALS"
	case Unauthenticated:
		return "UNAUTHENTICATED"
	case TokenExpired:
		return "TOKEN_EXPIRED"
	case TokenInvalid:
		return "TOKEN_INVALID"
	case NotFound:
		return "NOT_FOUND"
	case Conflict:
		return "CONFLICT"
	default:
		return "SERVER_ERROR"
	}
}

// AppError carries a taxonomy code, a user-facing message, and an optional
// wrapped cause for logs.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error's code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case InvalidCredentials, Unauthenticated, TokenExpired, TokenInvalid:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError with the given code and user-facing message
func New(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewInvalidCredentials creates the single sign-in failure error. The message
// is fixed so response shape never leaks which check failed.
func NewInvalidCredentials() *AppError {
	return New(InvalidCredentials, "invalid email or password", nil)
}

// NewUnauthenticated creates an Unauthenticated error
func NewUnauthenticated(message string, err error) *AppError {
	return New(Unauthenticated, message, err)
}

// NewTokenExpired creates a TokenExpired error
func NewTokenExpired() *AppError {
	return New(TokenExpired, "token expired", nil)
}

// NewTokenInvalid creates a TokenInvalid error
func NewTokenInvalid(err error) *AppError {
	return New(TokenInvalid, "invalid token", err)
}

// NewNotFound creates a NotFound error
func NewNotFound(message string, err error) *AppError {
	return New(NotFound, message, err)
}

// NewConflict creates a Conflict error
func NewConflict(message string) *AppError {
	return New(Conflict, message, nil)
}

// NewEmailDeliveryFailed creates an EmailDeliveryFailed error
func NewEmailDeliveryFailed(err error) *AppError {
	return New(EmailDeliveryFailed, "unable to send email", err)
}

// NewTokenPersistError creates a TokenPersistError
func NewTokenPersistError(err error) *AppError {
	return New(TokenPersistError, "unable to save token", err)
}

// NewServerError creates the catch-all ServerError
func NewServerError(message string, err error) *AppError {
	return New(ServerError, message, err)
}

// From converts any error to an *AppError, falling back to ServerError so
// nothing propagates to the HTTP layer untyped.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewServerError("something went wrong", err)
}

// Is reports whether err is an AppError with the given code
func Is(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
