package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/session"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and places the caller's session on the request context.  The provided
// secret must match the one used when issuing tokens.  Handlers behind
// this middleware read the identity via session.FromContext; the legacy
// "user_id"/"role" context keys are also populated for key-based consumers
// such as the rate limiter.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject tokens signed with anything but HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			sess := sessionFromClaims(claims)
			if sess == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			session.ToContext(c, sess)
			c.Set("user_id", sess.UID)
			c.Set("role", sess.Role)
			return next(c)
		}
	}
}

// sessionFromClaims rebuilds the cached session from token claims.  The
// role inside is the snapshot taken when the token was issued; it is not
// re-verified against the database here.
func sessionFromClaims(claims jwt.MapClaims) *session.Session {
	var uid uint64
	switch sub := claims["sub"].(type) {
	case float64:
		// JSON numbers decode as float64.
		uid = uint64(sub)
	case string:
		parsed, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return nil
		}
		uid = parsed
	default:
		return nil
	}
	if uid == 0 {
		return nil
	}
	s := &session.Session{UID: uid}
	if v, ok := claims["email"].(string); ok {
		s.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		s.Role = v
	}
	return s
}
