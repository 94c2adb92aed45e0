package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Skotchmaster/auth_service/internal/events"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/repo"
)

type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenIssuer interface {
	Issue(subject string) (string, error)
}

type AuthService struct {
	Users       UserLookup
	Revocations RevocationStore
	Tokens      TokenIssuer
	Hasher      PasswordHasher
	Events      events.Publisher

	dummyOnce sync.Once
	dummyHash string
}

type LoginResult struct {
	AccessToken string
	User        *models.User
}

// burnCompare spends one hash comparison so unknown usernames cost as much as wrong passwords.
func (s *AuthService) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.HashPassword("dummy-password-for-timing")
	})
	s.Hasher.CheckPassword(s.dummyHash, password)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		return nil, validation("username and password are required")
	}

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.burnCompare(password)
			l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "reason", "db_error", "error", err)
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !s.Hasher.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.Tokens.Issue(user.Username)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.UserLoggedIn, user)
	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{AccessToken: accessToken, User: user}, nil
}

// Logout revokes the token identified by jti until its own expiry.
func (s *AuthService) Logout(ctx context.Context, user *models.User, jti string, expiresAt time.Time) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if user == nil || jti == "" {
		return ErrUnauthenticated
	}

	if err := s.Revocations.Revoke(ctx, jti, expiresAt); err != nil {
		if errors.Is(err, repo.ErrAlreadyRevoked) {
			l.Warn("logout_failed", "status", 400, "reason", "token already revoked")
			return fmt.Errorf("%w: %w", ErrAlreadyRevoked, err)
		}
		l.Error("logout_failed", "status", 500, "reason", "cannot revoke token", "error", err)
		return fmt.Errorf("revoke token: %w", err)
	}

	publish(ctx, s.Events, events.UserLoggedOut, user)
	l.Info("successful_logout", "user_id", user.ID)
	return nil
}
