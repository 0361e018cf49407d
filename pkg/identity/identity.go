package identity

import (
	"github.com/budyapp/storefront/pkg/session"
	"github.com/budyapp/storefront/pkg/tenant"
)

// User is the authenticated user attached to a request.
type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Picture     string   `json:"picture,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	AccessToken string   `json:"-"`
	Roles       []string `json:"roles"`
}

// Identity is the per-request resolution result consumed by all
// downstream handlers. Either field may be nil: no tenant means the
// hostname did not map to a storefront, no user means the request is
// anonymous.
type Identity struct {
	Tenant *tenant.Info `json:"tenant"`
	User   *User        `json:"user"`
}

// userFromSession builds the request user from session data and the
// access token valid for this request.
func userFromSession(data *session.Data, accessToken string) *User {
	return &User{
		ID:          data.UserID,
		Email:       data.Email,
		Name:        data.Name,
		Picture:     data.Picture,
		PhoneNumber: data.PhoneNumber,
		AccessToken: accessToken,
		Roles:       data.Roles,
	}
}
