package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/budyapp/storefront/pkg/budyapi"
	"github.com/budyapp/storefront/pkg/claims"
	"github.com/budyapp/storefront/pkg/session"
	"github.com/budyapp/storefront/pkg/tenant"
)

// barePhoneNameRe matches display names that are still a raw phone
// number, meaning the user has not set up a profile yet.
var barePhoneNameRe = regexp.MustCompile(`^\+?\d{8,15}$`)

// Auth serves the login and logout endpoints. Every login flow ends
// the same way: exchange credentials at the backend, extract the
// identity from the returned access token, and establish a session.
type Auth struct {
	sessions *session.Manager
	api      *budyapi.Client
	log      *slog.Logger
}

func NewAuth(sessions *session.Manager, api *budyapi.Client, log *slog.Logger) *Auth {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Auth{sessions: sessions, api: api, log: log}
}

type userView struct {
	ID          string   `json:"userId"`
	Email       string   `json:"email,omitempty"`
	Name        string   `json:"name,omitempty"`
	Picture     string   `json:"picture,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Roles       []string `json:"roles"`
}

func viewOf(s *claims.Session) userView {
	return userView{
		ID:          s.UserID,
		Email:       s.Email,
		Name:        s.Name,
		Picture:     s.Picture,
		PhoneNumber: s.PhoneNumber,
		Roles:       s.Roles,
	}
}

// GoogleLogin handles POST /auth/google.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := decodeJSON(r, &req); err != nil || req.IDToken == "" {
		respondError(w, http.StatusBadRequest, "idToken is required")
		return
	}

	info, ok := tenant.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown store")
		return
	}

	resp, err := h.api.ExchangeGoogleIDToken(r.Context(), req.IDToken, budyapi.TenantRef{ID: info.ID, Name: info.Name})
	if err != nil {
		h.exchangeFailed(w, r, err, "google login failed")
		return
	}

	sess, err := h.establish(w, r, resp, info.ID)
	if err != nil {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    viewOf(sess),
	})
}

// RequestPhonePIN handles POST /auth/phone/request-pin. The backend's
// response is relayed verbatim so the client sees the verification id
// and expiry exactly as issued.
func (h *Auth) RequestPhonePIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := decodeJSON(r, &req); err != nil || req.PhoneNumber == "" {
		respondError(w, http.StatusBadRequest, "phoneNumber is required")
		return
	}

	info, ok := tenant.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown store")
		return
	}

	raw, err := h.api.RequestPhonePIN(r.Context(), req.PhoneNumber, info.Name)
	if err != nil {
		h.log.ErrorContext(r.Context(), "phone pin request failed", slog.Any("error", err))
		respondError(w, http.StatusBadGateway, "could not send PIN")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// VerifyPhonePIN handles POST /auth/phone/verify. When the resulting
// display name is still a bare phone number the response carries a
// redirect to profile setup.
func (h *Auth) VerifyPhonePIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VerificationID string `json:"verificationId"`
		PIN            string `json:"pin"`
	}
	if err := decodeJSON(r, &req); err != nil || req.VerificationID == "" || req.PIN == "" {
		respondError(w, http.StatusBadRequest, "verificationId and pin are required")
		return
	}

	info, ok := tenant.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown store")
		return
	}

	resp, err := h.api.ExchangePhonePIN(r.Context(), req.VerificationID, req.PIN, budyapi.TenantRef{ID: info.ID, Name: info.Name})
	if err != nil {
		h.exchangeFailed(w, r, err, "phone login failed")
		return
	}

	sess, err := h.establish(w, r, resp, info.ID)
	if err != nil {
		return
	}

	body := map[string]any{
		"success": true,
		"user":    viewOf(sess),
	}
	if barePhoneNameRe.MatchString(sess.Name) {
		body["redirectTo"] = "/auth/setup-profile"
	}
	respondJSON(w, http.StatusOK, body)
}

// Logout handles POST /auth/logout.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establish extracts the identity from a token response and writes the
// session. It responds to the client itself on failure.
func (h *Auth) establish(w http.ResponseWriter, r *http.Request, resp claims.TokenResponse, tenantID string) (*claims.Session, error) {
	sess, err := claims.ExtractSession(resp, tenantID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "token response unusable", slog.Any("error", err))
		respondError(w, http.StatusBadGateway, "login failed")
		return nil, err
	}

	payload := session.Payload{
		UserID:       sess.UserID,
		Email:        sess.Email,
		Name:         sess.Name,
		Picture:      sess.Picture,
		PhoneNumber:  sess.PhoneNumber,
		Roles:        sess.Roles,
		TenantID:     sess.TenantID,
		RefreshToken: sess.RefreshToken,
	}
	if err := h.sessions.Set(w, payload, sess.AccessToken, sess.ExpiresAt); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write session", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "could not establish session")
		return nil, err
	}
	return sess, nil
}

// exchangeFailed maps token endpoint failures to client responses. A
// 4xx from the issuer with a description becomes a 401 carrying that
// description; everything else is a 502 with a generic message.
func (h *Auth) exchangeFailed(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var xerr *budyapi.ExchangeError
	if errors.As(err, &xerr) && xerr.StatusCode >= 400 && xerr.StatusCode < 500 {
		msg := xerr.Description
		if msg == "" {
			msg = fallback
		}
		respondError(w, http.StatusUnauthorized, msg)
		return
	}
	h.log.ErrorContext(r.Context(), "token exchange failed", slog.Any("error", err))
	respondError(w, http.StatusBadGateway, fallback)
}
