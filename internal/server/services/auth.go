// Package services contains server-side business logic. This file implements
// AuthService, which handles signup, signin, and issuing session JWTs.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/linkvault/internal/common"
	"github.com/dmitrijs2005/linkvault/internal/cryptox"
	"github.com/dmitrijs2005/linkvault/internal/dbx"
	"github.com/dmitrijs2005/linkvault/internal/logging"
	"github.com/dmitrijs2005/linkvault/internal/server/auth"
	"github.com/dmitrijs2005/linkvault/internal/server/config"
	"github.com/dmitrijs2005/linkvault/internal/server/models"
	"github.com/dmitrijs2005/linkvault/internal/server/repositories/repomanager"
)

// Token carries the signed session token issued on successful signup or
// signin.
type Token struct {
	AccessToken string `json:"accessToken"`
}

// AuthService provides credential-based authentication:
// - SignUp: create a user with a hashed password and mint a session token
// - SignIn: verify credentials and mint a session token
type AuthService struct {
	db                          dbx.DBTX
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		logger:                      l.With("module", "auth_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// SignUp registers a new user and returns a session token embedding the new
// user's id and email.
//
// The existence check is only a fast path; the unique index on email is the
// authoritative guard, so a conflicting concurrent signup still surfaces as
// common.ErrorAlreadyExists from the create call.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*Token, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "signup lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, common.ErrorValidation
		}
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:    uuid.NewString(),
		Email: email,
		Hash:  hash,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrorAlreadyExists
		case errors.Is(err, common.ErrorValidation):
			return nil, common.ErrorValidation
		default:
			s.logger.Error(ctx, "signup persist failed", "error", err)
			return nil, common.ErrorInternal
		}
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return token, nil
}

// SignIn verifies the given credentials and returns a session token.
//
// Every failure is surfaced as common.ErrorUnauthorized so the boundary does
// not reveal whether the email exists, the password was wrong, or something
// broke internally. The distinguishing cause is logged here instead.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Token, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "signin lookup failed", "error", err)
		}
		return nil, common.ErrorUnauthorized
	}

	ok, err := cryptox.VerifyPassword(user.Hash, password)
	if err != nil {
		s.logger.Error(ctx, "stored hash unreadable", "user_id", user.ID, "error", err)
		return nil, common.ErrorUnauthorized
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorUnauthorized
	}

	return token, nil
}

func (s *AuthService) generateToken(userID, email string) (*Token, error) {
	accessToken, err := auth.GenerateToken(userID, email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: accessToken}, nil
}
