// Package services contains the server-side business logic. This file
// implements UserService: registration, login, refresh-token rotation and
// out-of-band token validation.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"

	"taskkeeper/internal/common"
	"taskkeeper/internal/server/auth"
	"taskkeeper/internal/server/models"
	"taskkeeper/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and the opaque refresh token
// currently stored on the account.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterResult is what a successful registration returns to the caller.
type RegisterResult struct {
	Username string
	TokenPair
}

type UserService struct {
	accounts users.Repository
	issuer   *auth.TokenIssuer
}

func NewUserService(accounts users.Repository, issuer *auth.TokenIssuer) *UserService {
	return &UserService{accounts: accounts, issuer: issuer}
}

// Register creates an account and starts its first session. Role defaults to
// User when blank. Blank username or password yields common.ErrValidation,
// a taken username common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*RegisterResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, common.ErrValidation
	}
	if strings.TrimSpace(role) == "" {
		role = models.RoleUser
	}

	account, err := s.accounts.Create(ctx, username, password, role)
	if err != nil {
		return nil, err
	}

	pair, err := s.rotate(ctx, account)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{Username: account.Username, TokenPair: *pair}, nil
}

// Login verifies the credentials and mints a fresh token pair. The new
// refresh token overwrites any previous one, so logging in elsewhere ends
// the prior session.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	account, err := s.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(password, account.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.rotate(ctx, account)
}

// RefreshToken exchanges the presented refresh token for a new pair. The
// caller is already authenticated by the web layer; here only the stored
// token has to match exactly.
func (s *UserService) RefreshToken(ctx context.Context, username, presented string) (*TokenPair, error) {
	account, err := s.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	if account.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*account.RefreshToken), []byte(presented)) != 1 {
		return nil, common.ErrorUnauthorized
	}

	return s.rotate(ctx, account)
}

// ValidateToken verifies the token and returns its subject username.
func (s *UserService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *UserService) findAccount(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return account, nil
}

// rotate issues a new access token and replaces the stored refresh token.
func (s *UserService) rotate(ctx context.Context, account *models.Account) (*TokenPair, error) {
	access, err := s.issuer.Issue(account)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	account.RefreshToken = &refresh
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
