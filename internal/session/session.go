// Package session carries the authenticated identity through a request and
// decides whether it may enter the admin surface.  A Session is an explicit
// value handed to the components that need identity; nothing reads ambient
// global state.  The role inside a Session is the one snapshotted into the
// access token at login/refresh time, so a demotion only takes effect once
// the token expires or is refreshed.
package session

import (
	"github.com/labstack/echo/v4"
)

// Session is the cached identity of the caller: who they are and which role
// was attached to their credentials when issued.
type Session struct {
	UID   uint64 `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CanEnter reports whether the session may access admin-scoped views.
// Permitted iff a session is present and its role is "admin".  No network
// or database call is made here; the cached role is authoritative for the
// lifetime of the credential.
func CanEnter(s *Session) bool {
	return s != nil && s.Role == "admin"
}

// contextKey is the echo.Context key the auth middleware stores the parsed
// Session under.
const contextKey = "session"

// ToContext stores the session on the request context for downstream
// handlers.
func ToContext(c echo.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the session placed on the request context by the auth
// middleware, or nil when the request is unauthenticated.
func FromContext(c echo.Context) *Session {
	if v := c.Get(contextKey); v != nil {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}
