package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/budyapp/storefront/pkg/sealing"
)

const minSecretLength = 32

// Manager owns the sealed session cookie and the in-memory access-token
// cache. The cookie is the durable half of a session (it survives
// restarts and is bounded by the refresh-token lifetime); the cache is
// the volatile half holding the short-lived access token.
type Manager struct {
	cfg   Config
	cache *TokenCache
}

// NewManager creates a session manager from config.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	if len(cfg.Secret) < minSecretLength {
		return nil, ErrSecretTooShort
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "budy_shop_session"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 30 * 24 * 60 * 60
	}

	return &Manager{
		cfg:   cfg,
		cache: NewTokenCache(),
	}, nil
}

// TokenCache exposes the manager's access-token cache, mainly so the
// identity middleware can cache refreshed tokens directly.
func (m *Manager) TokenCache() *TokenCache {
	return m.cache
}

// Set seals the cookie payload, writes the session cookie and caches
// the access token for the payload's user.
func (m *Manager) Set(w http.ResponseWriter, payload Payload, accessToken string, expiresAt int64) error {
	sealed, err := sealing.Seal(payload, m.cfg.Secret)
	if err != nil {
		return err
	}

	m.writeCookie(w, sealed, m.cfg.MaxAge)
	m.cache.Put(payload.UserID, accessToken, expiresAt)
	return nil
}

// Get reads the session for the request. A missing or undecryptable
// cookie yields ErrNoSession. A session whose cached access token is
// absent or expired is returned with an empty AccessToken and zero
// ExpiresAt, signaling that a refresh is needed.
func (m *Manager) Get(r *http.Request) (*Data, error) {
	payload, err := m.readCookie(r)
	if err != nil {
		return nil, err
	}

	data := &Data{Payload: *payload}
	if token, expiresAt, ok := m.cache.Get(payload.UserID); ok {
		data.AccessToken = token
		data.ExpiresAt = expiresAt
	}
	return data, nil
}

// Clear tears the session down: it evicts the user's cache entry when
// the cookie can still be unsealed and deletes the cookie regardless.
// Calling it without a session is a no-op.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if payload, err := m.readCookie(r); err == nil {
		m.cache.Delete(payload.UserID)
	}
	m.deleteCookie(w)
}

// ProfileUpdate carries the cookie fields a profile edit may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string
	Picture *string
	Email   *string
}

// UpdateProfile applies the update to the sealed cookie payload and
// rewrites the cookie. It returns ErrNoSession when the cookie is
// absent or cannot be unsealed.
func (m *Manager) UpdateProfile(w http.ResponseWriter, r *http.Request, update ProfileUpdate) error {
	payload, err := m.readCookie(r)
	if err != nil {
		return err
	}

	if update.Name != nil {
		payload.Name = *update.Name
	}
	if update.Picture != nil {
		payload.Picture = *update.Picture
	}
	if update.Email != nil {
		payload.Email = *update.Email
	}

	return m.reseal(w, payload)
}

// CacheAccessToken overwrites the cache entry for userID. Used after a
// refresh, independently of any cookie rewriting.
func (m *Manager) CacheAccessToken(userID, accessToken string, expiresAt int64) {
	m.cache.Put(userID, accessToken, expiresAt)
}

// UpdateRefreshToken persists a rotated refresh token into the cookie.
// The cookie is only rewritten when its user id matches userID, so a
// rotation can never overwrite some other session's cookie. A missing
// or undecryptable cookie is a no-op returning ErrNoSession.
func (m *Manager) UpdateRefreshToken(w http.ResponseWriter, r *http.Request, userID, refreshToken string) error {
	payload, err := m.readCookie(r)
	if err != nil {
		return err
	}
	if payload.UserID != userID {
		return ErrUserMismatch
	}

	payload.RefreshToken = refreshToken
	return m.reseal(w, payload)
}

func (m *Manager) reseal(w http.ResponseWriter, payload *Payload) error {
	sealed, err := sealing.Seal(payload, m.cfg.Secret)
	if err != nil {
		return err
	}
	m.writeCookie(w, sealed, m.cfg.MaxAge)
	return nil
}

func (m *Manager) readCookie(r *http.Request) (*Payload, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return nil, errors.Join(ErrNoSession, err)
	}

	var payload Payload
	if err := sealing.Unseal(cookie.Value, m.cfg.Secret, &payload); err != nil {
		return nil, errors.Join(ErrNoSession, err)
	}
	return &payload, nil
}

func (m *Manager) writeCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) deleteCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
