package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budyapp/storefront/handler"
	"github.com/budyapp/storefront/pkg/identity"
	"github.com/budyapp/storefront/pkg/session"
)

// withUser injects an authenticated identity, standing in for the
// middleware.
func withUser(user *identity.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := identity.WithIdentity(r.Context(), identity.Identity{Tenant: testTenant, User: user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestProfileUpdate(t *testing.T) {
	t.Parallel()

	newRouter := func(t *testing.T, user *identity.User) (http.Handler, *session.Manager) {
		t.Helper()
		sessions := newSessions(t)
		return handler.Router(handler.RouterOptions{
			Profile:  handler.NewProfile(sessions, nil),
			Identity: withUser(user),
		}), sessions
	}

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/profile",
			strings.NewReader(`{"name":"New Name"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("updates name in cookie", func(t *testing.T) {
		t.Parallel()

		router, sessions := newRouter(t, &identity.User{ID: "user-1"})

		setRec := httptest.NewRecorder()
		require.NoError(t, sessions.Set(setRec, session.Payload{
			UserID:       "user-1",
			Name:         "+66933786822",
			TenantID:     "tenant-1",
			RefreshToken: "refresh-1",
		}, "token", 9999999999))
		cookie := setRec.Result().Cookies()[0]

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/profile",
			strings.NewReader(`{"name":"Somchai"}`))
		req.AddCookie(cookie)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		rewritten := w.Result().Cookies()
		require.Len(t, rewritten, 1)

		check := httptest.NewRequest(http.MethodGet, "/", nil)
		check.AddCookie(rewritten[0])
		data, err := sessions.Get(check)
		require.NoError(t, err)
		assert.Equal(t, "Somchai", data.Name)
		assert.Equal(t, "user-1", data.UserID)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, &identity.User{ID: "user-1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/profile",
			strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no cookie behind stale context", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, &identity.User{ID: "user-1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/profile",
			strings.NewReader(`{"name":"Somchai"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
