package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/session"
)

// RequireAdmin gates admin-scoped routes.  Entry is permitted iff a session
// is present on the context and its role is admin; the decision uses only
// the cached session built by JWTAuth, no freshness check is made.  Denied
// requests receive 403 with a pointer to the login entry point, the API
// equivalent of the client's redirect.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.CanEnter(session.FromContext(c)) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "you're not allowed to do that",
					"login": "/v1/auth/login",
				})
			}
			return next(c)
		}
	}
}

// RequireRole enforces that the authenticated user has one of the given
// roles.  It assumes JWTAuth already ran and rejects requests with a
// missing or disallowed role.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := session.FromContext(c)
			if s == nil || !allowed[s.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
