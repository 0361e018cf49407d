package budyapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budyapp/storefront/pkg/budyapi"
)

func newClient(srv *httptest.Server) *budyapi.Client {
	return budyapi.New(budyapi.Config{
		BaseURL:  srv.URL,
		ClientID: "Budy_Shop",
		Scope:    "offline_access Budy",
	}, budyapi.WithHTTPClient(srv.Client()))
}

func TestExchangeGoogleIDToken(t *testing.T) {
	t.Parallel()

	t.Run("sends the expected form and headers", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/connect/token", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Equal(t, "tenant-1", r.Header.Get("X-Tenant-Id"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "google_id_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "google-token", r.PostForm.Get("id_token"))
			assert.Equal(t, "shop", r.PostForm.Get("client_type"))
			assert.Equal(t, "Budy_Shop", r.PostForm.Get("client_id"))
			assert.Equal(t, "Weed365", r.PostForm.Get("tenant_name"))
			assert.Equal(t, "offline_access Budy", r.PostForm.Get("scope"))

			_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","expires_in":1800}`))
		}))
		defer srv.Close()

		resp, err := newClient(srv).ExchangeGoogleIDToken(context.Background(), "google-token",
			budyapi.TenantRef{ID: "tenant-1", Name: "Weed365"})
		require.NoError(t, err)

		assert.Equal(t, "at-1", resp.AccessToken)
		assert.Equal(t, "rt-1", resp.RefreshToken)
		assert.EqualValues(t, 1800, resp.ExpiresIn)
	})

	t.Run("non-2xx yields exchange error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Token expired"}`))
		}))
		defer srv.Close()

		_, err := newClient(srv).ExchangeGoogleIDToken(context.Background(), "bad",
			budyapi.TenantRef{ID: "tenant-1", Name: "Weed365"})

		var exchErr *budyapi.ExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Equal(t, http.StatusUnauthorized, exchErr.StatusCode)
		assert.Equal(t, "Token expired", exchErr.Description)
	})
}

func TestExchangePhonePIN(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "phone_pin", r.PostForm.Get("grant_type"))
		assert.Equal(t, "ver-1", r.PostForm.Get("verification_id"))
		assert.Equal(t, "123456", r.PostForm.Get("pin"))
		assert.Equal(t, "Weed365", r.PostForm.Get("tenant_name"))

		_, _ = w.Write([]byte(`{"access_token":"at-1","expires_in":3600}`))
	}))
	defer srv.Close()

	resp, err := newClient(srv).ExchangePhonePIN(context.Background(), "ver-1", "123456",
		budyapi.TenantRef{ID: "tenant-1", Name: "Weed365"})
	require.NoError(t, err)
	assert.Equal(t, "at-1", resp.AccessToken)
}

func TestRequestPhonePIN(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/phone/request-pin", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"success":true,"verificationId":"ver-1"}`))
	}))
	defer srv.Close()

	raw, err := newClient(srv).RequestPhonePIN(context.Background(), "+66933786822", "Weed365")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"verificationId":"ver-1"}`, string(raw))
}
