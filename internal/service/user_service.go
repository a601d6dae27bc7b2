package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"market-helper-be/internal/apperror"
	"market-helper-be/internal/cache"
	"market-helper-be/internal/models"
	"market-helper-be/internal/repository"
)

// UserService defines the interface for account management
type UserService interface {
	Register(req *models.RegisterRequest) (*models.RegisterResponse, error)
	List() ([]models.UserResponse, error)
	WipeAll() error
}

type userService struct {
	users  repository.UserRepository
	tokens repository.AuthTokenRepository
	lists  repository.MarketListRepository
	cache  cache.Cache
	ctx    context.Context
}

// NewUserService creates a new user service. cacheClient may be nil; the wipe
// then has no cached identities to drop.
func NewUserService(users repository.UserRepository, tokens repository.AuthTokenRepository, lists repository.MarketListRepository, cacheClient cache.Cache) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		lists:  lists,
		cache:  cacheClient,
		ctx:    context.Background(),
	}
}

// Register creates a new user account
func (s *userService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	existing, err := s.users.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewServerError("failed to look up user", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("you cannot register with this email, it is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewServerError("failed to hash password", err)
	}

	user, err := s.users.Create(req.Email, string(hashedPassword))
	if err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique index on users.email still reports it as a conflict
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflict("you cannot register with this email, it is already in use")
		}
		return nil, apperror.NewServerError("failed to create user", err)
	}

	return &models.RegisterResponse{
		Message: "User created successfully",
		User: models.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}

// List returns every user as its public projection
func (s *userService) List() ([]models.UserResponse, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, apperror.NewServerError("failed to list users", err)
	}

	responses := make([]models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = models.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		}
	}
	return responses, nil
}

// WipeAll deletes every row in the database, dependents first: prices, items,
// and lists, then auth tokens, then users. Cached identities go with the token
// rows; a wipe is a revocation event like sign-out and rotation.
func (s *userService) WipeAll() error {
	if err := s.lists.DeleteAll(); err != nil {
		return apperror.NewServerError("failed to wipe market list data", err)
	}
	if err := s.tokens.DeleteAll(); err != nil {
		return apperror.NewServerError("failed to wipe auth tokens", err)
	}
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(s.ctx, identityCacheKey("*")); err != nil {
			return apperror.NewServerError("failed to drop cached identities", err)
		}
	}
	if err := s.users.DeleteAll(); err != nil {
		return apperror.NewServerError("failed to wipe users", err)
	}
	return nil
}
