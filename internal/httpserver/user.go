package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/logging"
	mwauth "github.com/Skotchmaster/auth_service/internal/middleware/auth"
	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func userID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, transport.NewUserResponse(user))
}

func (h *UserHTTP) Me(c echo.Context) error {
	id := mwauth.IdentityFromContext(c.Request().Context())
	if id == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	return c.JSON(http.StatusOK, transport.MeResponse{
		User:      transport.NewUserResponse(id.User),
		TokenID:   id.TokenID,
		ExpiresAt: id.ExpiresAt,
	})
}

func (h *UserHTTP) Get(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.NewUserResponse(user))
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update")

	id, err := userID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.NewUserResponse(user))
}

func (h *UserHTTP) Delete(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "User deleted successfully"})
}
