package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestSessionMiddlewareIssuesSession(t *testing.T) {
	m := NewSessionMiddleware("test-secret")

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetSessionID(r.Context())
		require.True(t, ok)
		got = id
	})

	w := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	cookie := sessionCookie(t, w.Result())
	require.NotNil(t, cookie)
	assert.NotEmpty(t, got)
	assert.True(t, cookie.HttpOnly)
}

func TestSessionMiddlewareKeepsValidSession(t *testing.T) {
	m := NewSessionMiddleware("test-secret")

	var ids []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetSessionID(r.Context())
		ids = append(ids, id)
	})
	h := m.Middleware(next)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	cookie := sessionCookie(t, first.Result())
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
	assert.Nil(t, sessionCookie(t, second.Result()))
}

func TestSessionMiddlewareRejectsTamperedCookie(t *testing.T) {
	m := NewSessionMiddleware("test-secret")
	other := NewSessionMiddleware("other-secret")

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionID(r.Context())
	})

	issued := httptest.NewRecorder()
	other.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(issued, httptest.NewRequest(http.MethodGet, "/", nil))
	forged := sessionCookie(t, issued.Result())
	require.NotNil(t, forged)

	tests := []struct {
		name  string
		value string
	}{
		{name: "foreign signature", value: forged.Value},
		{name: "no signature", value: "6f1c3c1e-7a55-4b0a-9a39-2f0d2f1c8d11"},
		{name: "garbage", value: "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tt.value})
			w := httptest.NewRecorder()

			m.Middleware(next).ServeHTTP(w, req)

			fresh := sessionCookie(t, w.Result())
			require.NotNil(t, fresh)
			assert.NotEqual(t, tt.value, fresh.Value)
			assert.NotEmpty(t, got)
		})
	}
}
