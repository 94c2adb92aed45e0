package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/auth_service/internal/events"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/transport"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch repo.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

type UserService struct {
	Repo   UserStore
	Hasher PasswordHasher
	Events events.Publisher
}

func hashPassword(h PasswordHasher, password string) (string, error) {
	if password == "" {
		return "", validation("password is required")
	}
	pwHash, err := h.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", validation("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return pwHash, nil
}

func validUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return validation("username is required")
	}
	return nil
}

func storeErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repo.ErrUsernameTaken):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	if err := validUsername(username); err != nil {
		return nil, err
	}
	pwHash, err := hashPassword(s.Hasher, password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			l.Warn("register_failed", "status", 400, "reason", "user_exists")
		} else {
			l.Error("register_failed", "status", 500, "reason", "db_error", "error", err)
		}
		return nil, storeErr(err)
	}

	publish(ctx, s.Events, events.UserRegistered, user)
	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// Update applies only the members present in req. A password is hashed before it is stored.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update", "user_id", id)

	patch := repo.UserPatch{
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	}
	if req.Username != nil {
		if err := validUsername(*req.Username); err != nil {
			return nil, err
		}
		patch.Username = req.Username
	}
	if req.Password != nil {
		pwHash, err := hashPassword(s.Hasher, *req.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &pwHash
	}

	user, err := s.Repo.UpdateUser(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && !errors.Is(err, repo.ErrUsernameTaken) {
			l.Error("update_failed", "status", 500, "error", err)
		}
		return nil, storeErr(err)
	}

	publish(ctx, s.Events, events.UserUpdated, user)
	l.Info("update_success")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "user.delete", "user_id", id)

	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			l.Error("delete_failed", "status", 500, "error", err)
		}
		return storeErr(err)
	}

	publish(ctx, s.Events, events.UserDeleted, &models.User{ID: id})
	l.Info("delete_success")
	return nil
}
