package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/auth"
)

const identityCtxKey = "identity"

// Identity is authenticated caller attached to the request by Authorize
type Identity struct {
	Subject string
	Roles   []string
}

// HasAnyRole reports whether identity holds at least one of roles
func (i Identity) HasAnyRole(roles ...string) bool {
	return auth.Claims{Roles: i.Roles}.HasAnyRole(roles...)
}

// IdentityFrom returns identity attached to the request
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityCtxKey).(Identity)
	return identity, ok
}

// Authorize verifies bearer token and attaches caller identity to the request
func Authorize(validator *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHdr := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(authHdr, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header format")
			}

			claims, err := validator.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(identityCtxKey, Identity{Subject: claims.Subject, Roles: claims.Roles})
			return next(c)
		}
	}
}

// RequireRoles lets request through only if identity holds any of roles
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "request is not authenticated")
			}

			if !identity.HasAnyRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions to perform the action")
			}
			return next(c)
		}
	}
}
