package budyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/budyapp/storefront/pkg/claims"
)

// Client talks to the Budy backend: token exchanges at /connect/token
// and the phone PIN request endpoint.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *slog.Logger
	refresh singleflight.Group
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its timeout is left as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets a logger for exchange failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a backend API client from config.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

// ExchangeError is returned for a non-2xx token endpoint response. It
// keeps the issuer's error_description when one was provided, so login
// handlers can show it ("Invalid PIN" and the like).
type ExchangeError struct {
	StatusCode  int
	Description string
}

func (e *ExchangeError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("budyapi: token exchange failed with status %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("budyapi: token exchange failed with status %d", e.StatusCode)
}

// ExchangeGoogleIDToken trades a Google ID token for backend tokens.
// The tenant id travels in the X-Tenant-Id header and the tenant name
// in the form body, matching what the issuer expects for shop clients.
func (c *Client) ExchangeGoogleIDToken(ctx context.Context, idToken string, tenant TenantRef) (claims.TokenResponse, error) {
	form := url.Values{
		"grant_type":  {"google_id_token"},
		"id_token":    {idToken},
		"client_type": {"shop"},
		"client_id":   {c.cfg.ClientID},
		"tenant_name": {tenant.Name},
		"scope":       {c.cfg.Scope},
	}
	return c.exchange(ctx, form, tenant.ID)
}

// ExchangePhonePIN trades a verification id and PIN for backend tokens.
func (c *Client) ExchangePhonePIN(ctx context.Context, verificationID, pin string, tenant TenantRef) (claims.TokenResponse, error) {
	form := url.Values{
		"grant_type":      {"phone_pin"},
		"verification_id": {verificationID},
		"pin":             {pin},
		"client_id":       {c.cfg.ClientID},
		"tenant_name":     {tenant.Name},
		"scope":           {c.cfg.Scope},
	}
	return c.exchange(ctx, form, "")
}

// TenantRef names the tenant a token exchange happens for.
type TenantRef struct {
	ID   string
	Name string
}

// RequestPhonePIN asks the backend to text a login PIN to the given
// number. The backend's JSON response is returned verbatim for the
// handler to relay.
func (c *Client) RequestPhonePIN(ctx context.Context, phoneNumber, tenantName string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{
		"phoneNumber": phoneNumber,
		"tenantName":  tenantName,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/api/auth/phone/request-pin"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrBackendUnavailable, err)
	}
	return json.RawMessage(raw), nil
}

// exchange performs one POST to /connect/token and parses the response.
func (c *Client) exchange(ctx context.Context, form url.Values, tenantID string) (claims.TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/connect/token"), strings.NewReader(form.Encode()))
	if err != nil {
		return claims.TokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if tenantID != "" {
		req.Header.Set("X-Tenant-Id", tenantID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return claims.TokenResponse{}, errors.Join(ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		exchErr := &ExchangeError{StatusCode: resp.StatusCode}
		var errBody struct {
			ErrorDescription string `json:"error_description"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			exchErr.Description = errBody.ErrorDescription
		}
		c.logger.WarnContext(ctx, "token exchange failed",
			slog.String("grant_type", form.Get("grant_type")),
			slog.Int("status", resp.StatusCode))
		return claims.TokenResponse{}, exchErr
	}

	var tokenResp claims.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return claims.TokenResponse{}, errors.Join(ErrBackendUnavailable, err)
	}
	return tokenResp, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + path
}
