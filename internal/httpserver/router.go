package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/db"
	mwauth "github.com/Skotchmaster/auth_service/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/auth_service/internal/middleware/logging"
)

type Deps struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	Gateway        *mwauth.Gateway
	AuthHandler    *AuthHTTP
	UserHandler    *UserHTTP
	RequestTimeout time.Duration
}

// New builds the echo instance with the middleware chain and all routes.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(d.Logger))
	e.Use(middleware.Recover())
	if d.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(d.RequestTimeout))
	}
	e.Use(d.Gateway.Authenticate)

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the auth service"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.NoContent(http.StatusOK)
	})

	auth := e.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut)

	user := e.Group("/user")
	user.POST("/register", d.UserHandler.Register)
	user.GET("/me", d.UserHandler.Me, mwauth.RequireAuth)
	user.GET("/:id", d.UserHandler.Get)
	user.PUT("/update/:id", d.UserHandler.Update, mwauth.RequireAuth)
	user.DELETE("/delete/:id", d.UserHandler.Delete, mwauth.RequireAuth)
}
