package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	a := NewAdminAuth("test-secret")

	token, err := a.IssueToken("admin@example.com")
	require.NoError(t, err)

	email, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
}

func TestAdminTokenRejected(t *testing.T) {
	a := NewAdminAuth("test-secret")

	foreign, err := NewAdminAuth("other-secret").IssueToken("admin@example.com")
	require.NoError(t, err)

	expiredAuth := NewAdminAuth("test-secret")
	expiredAuth.now = func() time.Time { return time.Now().Add(-13 * time.Hour) }
	expired, err := expiredAuth.IssueToken("admin@example.com")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"foreign key": foreign,
		"expired":     expired,
		"garbage":     "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.ParseToken(token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	a := NewAdminAuth("test-secret")

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		email, ok := GetAdminEmail(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "admin@example.com", email)
	})

	login := httptest.NewRecorder()
	require.NoError(t, a.SetAdminCookie(login, "admin@example.com"))
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/feeds", nil)
	req.AddCookie(cookies[0])
	a.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, nextCalled)
}

func TestAdminMiddlewareWithoutCookie(t *testing.T) {
	a := NewAdminAuth("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not be called")
	})

	w := httptest.NewRecorder()
	a.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/feeds", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClearAdminCookie(t *testing.T) {
	w := httptest.NewRecorder()
	NewAdminAuth("test-secret").ClearAdminCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, adminCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
