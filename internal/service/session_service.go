package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"market-helper-be/internal/apperror"
	"market-helper-be/internal/cache"
	"market-helper-be/internal/entities"
	"market-helper-be/internal/jwt"
	"market-helper-be/internal/mailer"
	"market-helper-be/internal/models"
	"market-helper-be/internal/repository"
)

// identityCacheTTL bounds how long an authenticate result may be served from
// Redis without touching the store. Sign-out and rotation invalidate eagerly;
// the TTL covers everything else.
const identityCacheTTL = 5 * time.Minute

// SessionService mediates all token issuance and validation
type SessionService interface {
	SignIn(req *models.SignInRequest) (*models.SignInResponse, error)
	SignOut(tokenID, userID string) error
	Authenticate(rawToken string) (*models.UserIdentity, error)
	IssuePasswordReset(email string) error
}

type sessionService struct {
	users       repository.UserRepository
	tokens      repository.AuthTokenRepository
	jwtService  *jwt.JWTService
	mail        mailer.Mailer
	cache       cache.Cache
	ctx         context.Context
	tokenTTL    time.Duration
	resetTTL    time.Duration
	frontendURL string
	now         func() time.Time
}

// NewSessionService creates a new session service. cacheClient may be nil;
// the service then always goes to the store.
func NewSessionService(
	users repository.UserRepository,
	tokens repository.AuthTokenRepository,
	jwtService *jwt.JWTService,
	mail mailer.Mailer,
	cacheClient cache.Cache,
	tokenTTL, resetTTL time.Duration,
	frontendURL string,
) SessionService {
	svc := &sessionService{
		users:       users,
		tokens:      tokens,
		jwtService:  jwtService,
		mail:        mail,
		ctx:         context.Background(),
		tokenTTL:    tokenTTL,
		resetTTL:    resetTTL,
		frontendURL: frontendURL,
		now:         time.Now,
	}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// SignIn verifies credentials and returns the user's session token. While an
// existing token is still valid the call is idempotent and returns it
// unchanged; an expired or invalid token is rotated in place (same row id);
// a first sign-in creates the row.
func (s *sessionService) SignIn(req *models.SignInRequest) (*models.SignInResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same error as a password mismatch so the response never
			// reveals whether the account exists
			return nil, apperror.NewInvalidCredentials()
		}
		return nil, apperror.NewServerError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewInvalidCredentials()
	}

	existing, err := s.tokens.FindByUser(user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewServerError("failed to look up auth token", err)
	}

	if existing != nil {
		if v := s.jwtService.Verify(existing.Token); v.Status == jwt.StatusValid && !existing.Expired(s.now()) {
			return signInResponse(user, existing), nil
		}
		// Stale token string must not keep authenticating from cache
		s.invalidateIdentity(existing.Token)
	}

	tokenString, issuedAt, expiresAt, err := s.jwtService.Sign(user.ID, s.tokenTTL)
	if err != nil {
		return nil, apperror.NewServerError("unable to create token", err)
	}

	// The upsert keys on UNIQUE(user_id): a fresh sign-in inserts with the
	// generated id, a rotation keeps the existing row id. Concurrent
	// sign-ins serialize here instead of racing a find-then-create.
	token, err := s.tokens.Upsert(uuid.NewString(), user.ID, tokenString, issuedAt, expiresAt)
	if err != nil {
		return nil, apperror.NewServerError("failed to store auth token", err)
	}

	return signInResponse(user, token), nil
}

func signInResponse(user *entities.User, token *entities.AuthToken) *models.SignInResponse {
	return &models.SignInResponse{
		Authorized: true,
		User:       models.UserIdentity{ID: user.ID, Email: user.Email},
		Token: models.TokenResponse{
			ID:        token.ID,
			Token:     token.Token,
			ExpiresAt: token.ExpiresAt,
		},
	}
}

// SignOut deletes the token row matching both the token id and the owning
// user id. A mismatch on either reports NotFound and deletes nothing.
func (s *sessionService) SignOut(tokenID, userID string) error {
	// Resolve the token string first so the cached identity can be dropped
	var tokenString string
	if existing, err := s.tokens.FindByUser(userID); err == nil && existing.ID == tokenID {
		tokenString = existing.Token
	}

	if err := s.tokens.Delete(tokenID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFound("session not found", nil)
		}
		return apperror.NewServerError("failed to delete auth token", err)
	}

	if tokenString != "" {
		s.invalidateIdentity(tokenString)
	}
	return nil
}

// Authenticate resolves a raw bearer token to the minimal user identity.
// Malformed and unknown tokens are deliberately indistinguishable.
func (s *sessionService) Authenticate(rawToken string) (*models.UserIdentity, error) {
	if rawToken == "" {
		return nil, apperror.NewUnauthenticated("token not provided", nil)
	}

	if identity := s.cachedIdentity(rawToken); identity != nil {
		return identity, nil
	}

	token, err := s.tokens.FindByToken(rawToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewUnauthenticated("token not found", nil)
		}
		return nil, apperror.NewServerError("failed to look up auth token", err)
	}

	switch v := s.jwtService.Verify(token.Token); v.Status {
	case jwt.StatusValid:
		// fall through to user load
	case jwt.StatusExpired:
		return nil, apperror.NewTokenExpired()
	default:
		return nil, apperror.NewTokenInvalid(v.Err)
	}

	user, err := s.users.FindByID(token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Token row without an owner is a data integrity violation;
			// log it and refuse the request without crashing
			log.Printf("integrity violation: auth token %s references missing user %s", token.ID, token.UserID)
			return nil, apperror.NewUnauthenticated("unknown token owner", nil)
		}
		return nil, apperror.NewServerError("failed to load token owner", err)
	}

	identity := &models.UserIdentity{ID: user.ID, Email: user.Email}
	s.cacheIdentity(rawToken, identity, token.ExpiresAt)
	return identity, nil
}

// IssuePasswordReset stores a short-lived reset token on the user row and
// hands the reset link off to the mailer. Unlike sign-in, an unknown email
// answers NotFound: the follow-up is an email-based confirmation that reveals
// nothing further to the requester.
func (s *sessionService) IssuePasswordReset(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFound("user not found for the given email", nil)
		}
		return apperror.NewServerError("failed to look up user", err)
	}

	tokenString, _, _, err := s.jwtService.Sign(user.ID, s.resetTTL)
	if err != nil {
		return apperror.NewServerError("unable to create token", err)
	}

	if err := s.users.UpdatePasswordResetToken(user.ID, tokenString); err != nil {
		return apperror.NewTokenPersistError(err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, tokenString)
	if err := s.mail.SendPasswordReset(user.Email, resetLink, s.resetTTL); err != nil {
		return apperror.NewEmailDeliveryFailed(err)
	}

	return nil
}

func identityCacheKey(token string) string {
	return fmt.Sprintf("auth:token:%s", token)
}

func (s *sessionService) cachedIdentity(token string) *models.UserIdentity {
	if s.cache == nil {
		return nil
	}
	var identity models.UserIdentity
	if err := s.cache.GetJSON(s.ctx, identityCacheKey(token), &identity); err != nil {
		return nil
	}
	return &identity
}

func (s *sessionService) cacheIdentity(token string, identity *models.UserIdentity, expiresAt time.Time) {
	if s.cache == nil {
		return
	}
	ttl := identityCacheTTL
	if remaining := expiresAt.Sub(s.now()); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}
	s.cache.SetJSON(s.ctx, identityCacheKey(token), identity, ttl)
}

func (s *sessionService) invalidateIdentity(token string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(s.ctx, identityCacheKey(token))
}
