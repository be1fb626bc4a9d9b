package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MintCofee/tabshare/internal/service"
	"github.com/MintCofee/tabshare/internal/tokens"
)

const identityKey = "identity"

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// RequireAuth rejects the request before any handler logic runs when the
// bearer token is missing, malformed or expired. On success the verified
// identity is attached to the request context.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := tokens.FromBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Parse(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(identityKey, service.Identity{
			UserID:   claims.UserID(),
			Username: claims.Username,
			Role:     claims.Role,
		})
		return next(c)
	}
}

// RequireRole composes with RequireAuth and rejects authenticated actors
// whose role does not match.
func (m *Middleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.RequireAuth(func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || id.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return next(c)
		})
	}
}

func IdentityFrom(c echo.Context) (service.Identity, bool) {
	id, ok := c.Get(identityKey).(service.Identity)
	return id, ok
}
