package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/transport"
)

const internalMessage = "internal error"

// httpError translates a service error into the response the client sees.
func httpError(err error) *echo.HTTPError {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Msg)
	case errors.Is(err, service.ErrAlreadyRevoked):
		return echo.NewHTTPError(http.StatusBadRequest, "token already revoked")
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, "username already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, internalMessage).SetInternal(err)
	}
}

// ErrorHandler renders every error as {"error": message}. Server side failures never expose details.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := internalMessage

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = fmt.Sprint(he.Message)
			}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, transport.ErrorResponse{Error: msg})
}
