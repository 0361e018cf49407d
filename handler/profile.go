package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/budyapp/storefront/pkg/identity"
	"github.com/budyapp/storefront/pkg/session"
)

// Profile serves profile updates against the session cookie.
type Profile struct {
	sessions *session.Manager
	log      *slog.Logger
}

func NewProfile(sessions *session.Manager, log *slog.Logger) *Profile {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Profile{sessions: sessions, log: log}
}

// Update handles PUT /api/profile. Only the fields present in the
// request body change; absent fields keep their current values.
func (h *Profile) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity.UserFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Picture *string `json:"picture"`
		Email   *string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == nil && req.Picture == nil && req.Email == nil {
		respondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	update := session.ProfileUpdate{Name: req.Name, Picture: req.Picture, Email: req.Email}
	if err := h.sessions.UpdateProfile(w, r, update); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		h.log.ErrorContext(r.Context(), "profile update failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "could not update profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
