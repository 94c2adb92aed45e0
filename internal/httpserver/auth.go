package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/logging"
	mwauth "github.com/Skotchmaster/auth_service/internal/middleware/auth"
	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
	})
}

// LogOut revokes the caller's current token. Anonymous callers get 400.
func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	id := mwauth.IdentityFromContext(ctx)
	if id == nil {
		l.Warn("logout_failed", "status", 400, "reason", "not authenticated")
		return echo.NewHTTPError(http.StatusBadRequest, "not authenticated")
	}

	if err := h.Svc.Logout(ctx, id.User, id.TokenID, id.ExpiresAt); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Successfully logged out"})
}
