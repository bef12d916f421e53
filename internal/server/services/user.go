// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and mints bearer tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/neverlost-dev/neverlost-api/internal/common"
	"github.com/neverlost-dev/neverlost-api/internal/logging"
	"github.com/neverlost-dev/neverlost-api/internal/server/auth"
	"github.com/neverlost-dev/neverlost-api/internal/server/config"
	"github.com/neverlost-dev/neverlost-api/internal/server/models"
	"github.com/neverlost-dev/neverlost-api/internal/server/repositories/users"
)

// AuthResult bundles the account record (password hash never serialized)
// with a freshly minted bearer token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService provides authentication-related operations:
// - Register: create users after uniqueness checks
// - Login: verify credentials and mint tokens
type UserService struct {
	repo                  users.Repository
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the user repository and
// server config.
func NewUserService(repo users.Repository, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repo:                  repo,
		logger:                logger,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register checks email uniqueness, then username uniqueness, hashes the
// password, creates the user, and issues a token.
//
// The two existence checks and the create are not atomic: concurrent
// registrations with the same email or username can all pass the checks
// before either write lands. The external store's own constraints, if any,
// are the only backstop. Accepted limitation.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("email lookup: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("username lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", username)
	return s.withToken(user)
}

// Login looks the user up by email and compares the password against the
// stored hash. A missing user and a wrong password both return
// common.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("email lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.withToken(user)
}

func (s *UserService) withToken(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
