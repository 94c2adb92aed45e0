package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/auth_service/internal/models"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest lists every updatable field. Nil members are left unchanged.
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MeResponse struct {
	User      UserResponse `json:"user"`
	TokenID   string       `json:"token_id"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
