// Package services contains server-side business logic. UserService covers
// signup, login, token refresh and password change; Gate turns an access
// token into the current (active) user.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/authservice/internal/common"
	"github.com/dmitrijs2005/authservice/internal/dbx"
	"github.com/dmitrijs2005/authservice/internal/logging"
	"github.com/dmitrijs2005/authservice/internal/server/auth"
	"github.com/dmitrijs2005/authservice/internal/server/config"
	"github.com/dmitrijs2005/authservice/internal/server/models"
	"github.com/dmitrijs2005/authservice/internal/server/repositories/repomanager"
)

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// UserService is stateless between calls. Every method that touches
// storage runs on the caller's transaction.
type UserService struct {
	repomanager                  repomanager.RepositoryManager
	codec                        *auth.Codec
	hasher                       *auth.PasswordHasher
	logger                       logging.Logger
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(m repomanager.RepositoryManager, codec *auth.Codec, hasher *auth.PasswordHasher, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:                  m,
		codec:                        codec,
		hasher:                       hasher,
		logger:                       logger,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          func() time.Time { return time.Now().UTC() },
	}
}

// Signup stores a new active user. A taken email is KindAlreadyExists.
func (s *UserService) Signup(ctx context.Context, tx dbx.DBTX, email, password string) (*models.User, error) {
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, common.Internal(fmt.Errorf("hash password: %w", err))
	}

	user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
		Email:          email,
		HashedPassword: &hash,
		Active:         true,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WrapError(common.KindAlreadyExists, common.ErrAlreadyExists.Message, err)
		}
		return nil, common.Internal(fmt.Errorf("create user: %w", err))
	}

	s.logger.Info(ctx, "user signed up", "email", user.Email, "user_id", user.ID)
	return user, nil
}

// ProvisionUser creates a user with a generated password and returns it
// alongside the plaintext, which is never stored.
func (s *UserService) ProvisionUser(ctx context.Context, tx dbx.DBTX, email string) (*models.User, string, error) {
	password, err := auth.GeneratePassword()
	if err != nil {
		return nil, "", common.Internal(fmt.Errorf("generate password: %w", err))
	}

	user, err := s.Signup(ctx, tx, email, password)
	if err != nil {
		return nil, "", err
	}

	return user, password, nil
}

// Login checks the credentials, stamps LastLoginDate and mints a token
// pair. Unknown email and wrong password fail the same way.
func (s *UserService) Login(ctx context.Context, tx dbx.DBTX, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(tx)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the timing close to a real mismatch
			s.hasher.VerifyPassword(password, s.getDummyHash())
			return nil, common.AuthenticationFailed(err)
		}
		return nil, common.Internal(fmt.Errorf("get user: %w", err))
	}

	if user.HashedPassword == nil || !s.hasher.VerifyPassword(password, *user.HashedPassword) {
		s.logger.Debug(ctx, "login rejected", "email", email)
		return nil, common.AuthenticationFailed(nil)
	}

	now := s.now()
	user.LastLoginDate = &now
	if err := repo.Update(ctx, user); err != nil {
		return nil, common.Internal(fmt.Errorf("update user: %w", err))
	}

	pair, err := s.generateTokenPair(user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user logged in", "email", user.Email)
	return pair, nil
}

// ResolveFromAccessToken maps an access token to its user and stamps
// LastActiveDate. Every token or lookup failure is KindAuthenticationFailed.
func (s *UserService) ResolveFromAccessToken(ctx context.Context, tx dbx.DBTX, token string) (*models.User, error) {
	claims, err := s.codec.DecodeAs(token, auth.TokenTypeAccess)
	if err != nil {
		return nil, common.AuthenticationFailed(err)
	}

	repo := s.repomanager.Users(tx)

	user, err := repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.AuthenticationFailed(err)
		}
		return nil, common.Internal(fmt.Errorf("get user: %w", err))
	}

	now := s.now()
	user.LastActiveDate = &now
	if err := repo.Update(ctx, user); err != nil {
		return nil, common.Internal(fmt.Errorf("update user: %w", err))
	}

	return user, nil
}

// Refresh mints a new access token from a refresh token without touching
// storage. The refresh token itself is returned unchanged.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.DecodeAs(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.WrapError(common.KindRefreshExpired, common.ErrRefreshExpired.Message, err)
		}
		s.logger.Debug(ctx, "refresh rejected", "error", err)
		return nil, common.WrapError(common.KindRefreshInvalid, common.ErrRefreshInvalid.Message, err)
	}

	access, err := s.codec.Issue(claims.Subject, auth.TokenTypeAccess, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.Internal(fmt.Errorf("issue access token: %w", err))
	}

	return &TokenPair{AccessToken: access, RefreshToken: refreshToken, TokenType: common.TokenTypeBearer}, nil
}

// ChangePassword replaces the password of an already resolved user.
func (s *UserService) ChangePassword(ctx context.Context, tx dbx.DBTX, user *models.User, oldPassword, newPassword string) error {
	if user.HashedPassword == nil || !s.hasher.VerifyPassword(oldPassword, *user.HashedPassword) {
		return common.BadRequest("Old password is incorrect")
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return common.Internal(fmt.Errorf("hash password: %w", err))
	}

	user.HashedPassword = &hash
	if err := s.repomanager.Users(tx).Update(ctx, user); err != nil {
		return common.Internal(fmt.Errorf("update user: %w", err))
	}

	s.logger.Info(ctx, "password changed", "email", user.Email)
	return nil
}

func (s *UserService) generateTokenPair(subject string) (*TokenPair, error) {
	access, err := s.codec.Issue(subject, auth.TokenTypeAccess, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.Internal(fmt.Errorf("issue access token: %w", err))
	}

	refresh, err := s.codec.Issue(subject, auth.TokenTypeRefresh, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.Internal(fmt.Errorf("issue refresh token: %w", err))
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: common.TokenTypeBearer}, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.HashPassword("dummy-password-for-timing")
	})
	return s.dummyHash
}
