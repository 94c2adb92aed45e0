package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/logging"
)

type identityKey struct{}

func IntoContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

func setUserContext(c echo.Context, id *Identity) {
	req := c.Request()
	l := logging.FromContext(req.Context()).With("user_id", id.User.ID)
	ctx := logging.IntoContext(IntoContext(req.Context(), id), l)
	c.SetRequest(req.WithContext(ctx))
	c.Set("user_id", id.User.ID.String())
}
