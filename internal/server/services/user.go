// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing
// the access/refresh JWT pair.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/server/auth"
	"github.com/bimobaru/kanban-api/internal/server/config"
	"github.com/bimobaru/kanban-api/internal/server/models"
	"github.com/bimobaru/kanban-api/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides account operations:
// - Register: create users with hashed passwords
// - Login: verify credentials and mint the token pair
// - Refresh: mint a new access token for a refresh-token holder
// - ListUsers: public directory of registered users
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new account. A user with the same username or email
// yields common.ErrorAlreadyExists. The returned user carries no password hash.
func (s *UserService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	}
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	u.PasswordHash = ""
	return u, nil
}

// Login verifies the password against the stored bcrypt hash and, on
// success, returns a new TokenPair whose payload is the user's public
// projection. Unknown usernames yield common.ErrorNotFound; mismatched
// passwords yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorInvalidCredentials
	}

	return s.generateTokenPair(user.Public())
}

// Refresh mints a new access token for an identity already resolved from a
// valid refresh token. Tokens are self-describing; nothing is stored or
// revoked server-side.
func (s *UserService) Refresh(ctx context.Context, user *models.PublicUser) (string, error) {
	token, err := auth.GenerateToken(auth.TokenKindAccess, user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ListUsers returns every registered user's public fields.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.PublicUser, error) {
	repo := s.repomanager.Users(s.db)

	list, err := repo.SelectAll(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}

	result := make([]*models.PublicUser, 0, len(list))
	for _, u := range list {
		result = append(result, u.Public())
	}
	return result, nil
}

func (s *UserService) generateTokenPair(user *models.PublicUser) (*TokenPair, error) {
	access, err := auth.GenerateToken(auth.TokenKindAccess, user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(auth.TokenKindRefresh, user, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
