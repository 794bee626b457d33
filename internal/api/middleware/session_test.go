package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	mw := middleware.NewSession("storefront_session", 24*time.Hour, false)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.SessionIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
	})

	sessionCookie := func(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
		t.Helper()
		for _, c := range rr.Result().Cookies() {
			if c.Name == "storefront_session" {
				return c
			}
		}
		t.Fatal("session cookie not set")
		return nil
	}

	t.Run("issues a cookie when absent", func(t *testing.T) {
		rr := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		c := sessionCookie(t, rr)
		_, err := uuid.Parse(c.Value)
		require.NoError(t, err)
		assert.Equal(t, c.Value, seen)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, 86400, c.MaxAge)
	})

	t.Run("keeps an existing session", func(t *testing.T) {
		existing := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "storefront_session", Value: existing})
		rr := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rr, req)

		assert.Equal(t, existing, seen)
		assert.Equal(t, existing, sessionCookie(t, rr).Value)
	})

	t.Run("replaces a tampered cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "storefront_session", Value: "../../etc"})
		rr := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rr, req)

		assert.NotEqual(t, "../../etc", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}

func TestSessionIDFromContextMissing(t *testing.T) {
	_, ok := middleware.SessionIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
