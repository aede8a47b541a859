package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalate/careers-api/internal/session"
	"github.com/verbalate/careers-api/internal/utils"
)

func gateContext(sess *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/applications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		session.ToContext(c, sess)
	}
	return c, rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "entered")
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		sess     *session.Session
		wantCode int
	}{
		{"admin enters", &session.Session{UID: 1, Role: "admin"}, http.StatusOK},
		{"user denied", &session.Session{UID: 2, Role: "user"}, http.StatusForbidden},
		{"empty role denied", &session.Session{UID: 3}, http.StatusForbidden},
		{"no session denied", nil, http.StatusForbidden},
	}
	mw := RequireAdmin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := gateContext(tt.sess)
			require.NoError(t, mw(okHandler)(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusForbidden {
				// Denials point at the login entry, mirroring a redirect.
				assert.Contains(t, rec.Body.String(), "/v1/auth/login")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		sess     *session.Session
		wantCode int
	}{
		{"user allowed", &session.Session{UID: 2, Role: "user"}, http.StatusOK},
		{"admin allowed", &session.Session{UID: 1, Role: "admin"}, http.StatusOK},
		{"unknown role denied", &session.Session{UID: 3, Role: "bot"}, http.StatusForbidden},
		{"empty role denied", &session.Session{UID: 4}, http.StatusForbidden},
		{"no session denied", nil, http.StatusForbidden},
	}
	mw := RequireRole("user", "admin")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := gateContext(tt.sess)
			require.NoError(t, mw(okHandler)(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestJWTAuth_BuildsSession(t *testing.T) {
	const secret = "test-secret"
	tok, err := utils.NewAccessToken(secret, 42, "ops@verbalate.com", "admin", 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *session.Session
	next := func(c echo.Context) error {
		got = session.FromContext(c)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(secret)(next)(c))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, uint64(42), got.UID)
	assert.Equal(t, "ops@verbalate.com", got.Email)
	assert.Equal(t, "admin", got.Role)
}

func TestJWTAuth_Rejections(t *testing.T) {
	mw := JWTAuth("test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			require.NoError(t, mw(okHandler)(c))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("issuer-secret", 42, "x@y.com", "user", 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTAuth("other-secret")(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
