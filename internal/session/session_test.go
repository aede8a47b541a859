package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCanEnter(t *testing.T) {
	tests := []struct {
		name string
		sess *Session
		want bool
	}{
		{"admin role", &Session{UID: 1, Email: "ops@verbalate.com", Role: "admin"}, true},
		{"user role", &Session{UID: 2, Email: "jobseeker@example.com", Role: "user"}, false},
		{"empty role", &Session{UID: 3, Email: "nobody@example.com"}, false},
		{"case sensitive", &Session{UID: 4, Role: "Admin"}, false},
		{"arbitrary role", &Session{UID: 5, Role: "moderator"}, false},
		{"no session", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEnter(tt.sess))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Nil(t, FromContext(c))

	want := &Session{UID: 9, Email: "ops@verbalate.com", Role: "admin"}
	ToContext(c, want)
	assert.Equal(t, want, FromContext(c))
}
