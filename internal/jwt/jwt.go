package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Fixed claim values checked on every verification. A token signed for a
// different issuer or audience never validates, even with the right secret.
const (
	Issuer   = "market-helper-api"
	Audience = "market-helper-client"
)

// Status is the outcome of verifying a token
type Status int

const (
	// StatusValid means signature, issuer, audience, and expiry all check out
	StatusValid Status = iota
	// StatusExpired means the token verified but its expiry elapsed
	StatusExpired
	// StatusInvalid means the token failed signature or claim checks
	StatusInvalid
)

// Claims is the signed payload of a session or reset token
type Claims struct {
	jwt.RegisteredClaims
}

// Verification is the typed result of Verify. Claims is non-nil only when
// Status is StatusValid.
type Verification struct {
	Status Status
	Claims *Claims
	Err    error
}

// JWTService signs and verifies HS256 tokens with the fixed issuer/audience
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service. The secret must be non-empty;
// callers are expected to have validated configuration before this point.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Sign produces a signed token for the given subject, valid for ttl from now.
// Returns the token string together with its issued-at and expires-at times.
func (s *JWTService) Sign(subject string, ttl time.Duration) (string, time.Time, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(ttl)

	// The jti keeps every signed token distinct: iat/exp truncate to whole
	// seconds, so without it two tokens for the same subject signed in the
	// same second would be byte-identical
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, issuedAt, expiresAt, nil
}

// Verify checks signature, issuer, audience, and expiry, returning a typed
// result instead of an error the caller would have to string-match.
func (s *JWTService) Verify(tokenString string) Verification {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Verification{Status: StatusExpired, Err: err}
		}
		return Verification{Status: StatusInvalid, Err: err}
	}
	if !token.Valid {
		return Verification{Status: StatusInvalid, Err: errors.New("token is invalid")}
	}

	return Verification{Status: StatusValid, Claims: claims}
}
