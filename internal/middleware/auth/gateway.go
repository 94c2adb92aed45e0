package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

type TokenDecoder interface {
	Decode(token string) (*tokens.Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// State is the outcome of resolving the credentials of one request.
type State int

const (
	NoToken State = iota
	TokenInvalid
	Revoked
	SubjectMissing
	Authenticated
)

func (s State) String() string {
	switch s {
	case NoToken:
		return "no_token"
	case TokenInvalid:
		return "token_invalid"
	case Revoked:
		return "revoked"
	case SubjectMissing:
		return "subject_missing"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the authenticated caller. It lives only as long as the request.
type Identity struct {
	User      *models.User
	TokenID   string
	ExpiresAt time.Time
}

type Gateway struct {
	Tokens      TokenDecoder
	Revocations RevocationChecker
	Users       UserFinder
}

func NewGateway(t TokenDecoder, r RevocationChecker, u UserFinder) *Gateway {
	return &Gateway{Tokens: t, Revocations: r, Users: u}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Resolve walks the Authorization header through decode, revocation and subject lookup.
// Only store failures are returned as errors; every other outcome is reported through State.
func (g *Gateway) Resolve(ctx context.Context, header string) (State, *Identity, error) {
	raw := bearerToken(header)
	if raw == "" {
		return NoToken, nil, nil
	}

	claims, err := g.Tokens.Decode(raw)
	if err != nil {
		return TokenInvalid, nil, nil
	}

	revoked, err := g.Revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return TokenInvalid, nil, err
	}
	if revoked {
		return Revoked, nil, nil
	}

	user, err := g.Users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return SubjectMissing, nil, nil
		}
		return TokenInvalid, nil, err
	}

	return Authenticated, &Identity{
		User:      user,
		TokenID:   claims.ID,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// Authenticate attaches the caller identity when there is one and lets anonymous requests through.
func (g *Gateway) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "auth")

		state, id, err := g.Resolve(ctx, c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			l.Error("auth_resolve_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
		}

		switch state {
		case Authenticated:
			setUserContext(c, id)
		case NoToken:
		default:
			l.Debug("anonymous_request", "reason", state.String())
		}
		return next(c)
	}
}

// RequireAuth rejects requests that reached it without an identity.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IdentityFromContext(c.Request().Context()) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
		}
		return next(c)
	}
}
