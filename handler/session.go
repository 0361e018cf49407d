package handler

import (
	"net/http"

	"github.com/budyapp/storefront/pkg/identity"
)

// Session handles GET /api/session. It reports the request's resolved
// identity: tenant and user are both null-able, an anonymous visitor
// on an unknown subdomain gets {"tenant":null,"user":null}.
func Session(w http.ResponseWriter, r *http.Request) {
	id := identity.FromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"tenant": id.Tenant,
		"user":   id.User,
	})
}
