package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// newForeignToken signs a token with the given secret but claims belonging to
// some other service.
func newForeignToken(t *testing.T, secret string) string {
	t.Helper()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "another-service",
			Audience:  jwt.ClaimStrings{"another-client"},
			Subject:   "u3",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign foreign token: %v", err)
	}
	return tok
}
