package handler_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budyapp/storefront/handler"
	"github.com/budyapp/storefront/pkg/budyapi"
	"github.com/budyapp/storefront/pkg/session"
	"github.com/budyapp/storefront/pkg/tenant"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var testTenant = &tenant.Info{ID: "tenant-1", Name: "weed365", NormalizedName: "WEED365"}

func makeAccessToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(session.Config{
		CookieName: "budy_shop_session",
		Secret:     testSecret,
		MaxAge:     2592000,
	})
	require.NoError(t, err)
	return mgr
}

// withTenant injects a fixed tenant, standing in for the identity
// middleware.
func withTenant(info *tenant.Info) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if info != nil {
				r = r.WithContext(tenant.WithTenant(r.Context(), info))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newAuthRouter(t *testing.T, backendURL string, info *tenant.Info) (http.Handler, *session.Manager) {
	t.Helper()
	sessions := newSessions(t)
	api := budyapi.New(budyapi.Config{BaseURL: backendURL, ClientID: "Budy_Shop", Scope: "offline_access Budy"})
	r := handler.Router(handler.RouterOptions{
		Auth:     handler.NewAuth(sessions, api, nil),
		Identity: withTenant(info),
	})
	return r, sessions
}

func TestGoogleLogin(t *testing.T) {
	t.Parallel()

	t.Run("success sets session and returns user", func(t *testing.T) {
		t.Parallel()

		token := makeAccessToken(t, map[string]any{
			"sub":   "user-1",
			"email": "jo@example.com",
			"name":  "Jo",
		})
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/connect/token", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "google_id_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "fake-google-token", r.PostForm.Get("id_token"))
			assert.Equal(t, "shop", r.PostForm.Get("client_type"))
			assert.Equal(t, "weed365", r.PostForm.Get("tenant_name"))
			assert.Equal(t, "tenant-1", r.Header.Get("X-Tenant-Id"))
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  token,
				"refresh_token": "refresh-1",
				"expires_in":    3600,
			})
		}))
		defer backend.Close()

		router, sessions := newAuthRouter(t, backend.URL, testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/google",
			strings.NewReader(`{"idToken":"fake-google-token"}`)))

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			User    struct {
				ID    string `json:"userId"`
				Email string `json:"email"`
				Name  string `json:"name"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "user-1", body.User.ID)
		assert.Equal(t, "Jo", body.User.Name)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "budy_shop_session", cookies[0].Name)
		assert.NotContains(t, cookies[0].Value, token)

		// The session round-trips through the cookie.
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		data, err := sessions.Get(req)
		require.NoError(t, err)
		assert.Equal(t, "user-1", data.UserID)
		assert.Equal(t, token, data.AccessToken)
	})

	t.Run("missing idToken", func(t *testing.T) {
		t.Parallel()

		router, _ := newAuthRouter(t, "http://127.0.0.1:0", testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/google",
			strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no tenant", func(t *testing.T) {
		t.Parallel()

		router, _ := newAuthRouter(t, "http://127.0.0.1:0", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/google",
			strings.NewReader(`{"idToken":"x"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown store")
	})

	t.Run("issuer rejection surfaces description", func(t *testing.T) {
		t.Parallel()

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "account disabled"})
		}))
		defer backend.Close()

		router, _ := newAuthRouter(t, backend.URL, testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/google",
			strings.NewReader(`{"idToken":"x"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "account disabled")
	})

	t.Run("backend down", func(t *testing.T) {
		t.Parallel()

		router, _ := newAuthRouter(t, "http://127.0.0.1:0", testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/google",
			strings.NewReader(`{"idToken":"x"}`)))
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestPhoneLogin(t *testing.T) {
	t.Parallel()

	t.Run("request pin relays backend response", func(t *testing.T) {
		t.Parallel()

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/phone/request-pin", r.URL.Path)
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "+66933786822", req["phoneNumber"])
			assert.Equal(t, "weed365", req["tenantName"])
			w.Write([]byte(`{"verificationId":"v-1","expiresIn":300}`))
		}))
		defer backend.Close()

		router, _ := newAuthRouter(t, backend.URL, testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/phone/request-pin",
			strings.NewReader(`{"phoneNumber":"+66933786822"}`)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"verificationId":"v-1","expiresIn":300}`, w.Body.String())
	})

	t.Run("verify redirects fresh users to profile setup", func(t *testing.T) {
		t.Parallel()

		token := makeAccessToken(t, map[string]any{
			"sub":   "user-2",
			"email": "66933786822@phone.budy.app",
		})
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "phone_pin", r.PostForm.Get("grant_type"))
			assert.Equal(t, "v-1", r.PostForm.Get("verification_id"))
			assert.Equal(t, "123456", r.PostForm.Get("pin"))
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  token,
				"refresh_token": "refresh-2",
				"expires_in":    3600,
			})
		}))
		defer backend.Close()

		router, _ := newAuthRouter(t, backend.URL, testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/phone/verify",
			strings.NewReader(`{"verificationId":"v-1","pin":"123456"}`)))

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "/auth/setup-profile", body["redirectTo"])
	})

	t.Run("verify wrong pin", func(t *testing.T) {
		t.Parallel()

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid PIN"})
		}))
		defer backend.Close()

		router, _ := newAuthRouter(t, backend.URL, testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/phone/verify",
			strings.NewReader(`{"verificationId":"v-1","pin":"000000"}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid PIN")
	})

	t.Run("verify established name skips redirect", func(t *testing.T) {
		t.Parallel()

		token := makeAccessToken(t, map[string]any{
			"sub":   "user-3",
			"email": "66933786822@phone.budy.app",
			"name":  "Somchai",
		})
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  token,
				"refresh_token": "refresh-3",
				"expires_in":    3600,
			})
		}))
		defer backend.Close()

		router, _ := newAuthRouter(t, backend.URL, testTenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/phone/verify",
			strings.NewReader(`{"verificationId":"v-1","pin":"123456"}`)))

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotContains(t, body, "redirectTo")
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	router, sessions := newAuthRouter(t, "http://127.0.0.1:0", testTenant)

	setRec := httptest.NewRecorder()
	require.NoError(t, sessions.Set(setRec, session.Payload{
		UserID:       "user-1",
		TenantID:     "tenant-1",
		RefreshToken: "refresh-1",
	}, "token", 9999999999))
	cookie := setRec.Result().Cookies()[0]

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Empty(t, cleared[0].Value)
}
