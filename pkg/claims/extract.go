package claims

import (
	"regexp"
	"time"
)

// Claim keys used by the token issuer. Each short OIDC name has a
// legacy XML-schema fallback emitted by older issuer versions; the
// probe order must not change.
const (
	claimSubject       = "sub"
	claimLegacySubject = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimEmail         = "email"
	claimLegacyEmail   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimName          = "name"
	claimLegacyName    = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	claimGivenName     = "given_name"
	claimRole          = "role"
	claimLegacyRole    = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	claimPicture       = "picture"
)

// defaultExpiresIn is assumed when the token response omits expires_in.
const defaultExpiresIn = 3600

// Phone-based accounts get a synthetic email of the form
// "<digits>@phone.<domain>" from the issuer.
var phoneEmailRe = regexp.MustCompile(`^(\d+)@phone\..+$`)

// TokenResponse is the issuer's token endpoint response body.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// Session is the normalized identity record extracted from a token
// response. ExpiresAt is a Unix timestamp.
type Session struct {
	UserID       string
	Email        string
	Name         string
	Picture      string
	PhoneNumber  string
	Roles        []string
	TenantID     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

// ExtractSession builds a Session from a token response for the given
// tenant. It returns ErrNoSubject when no user id claim can be resolved
// and ErrMalformedToken when the access token cannot be decoded.
func ExtractSession(resp TokenResponse, tenantID string) (*Session, error) {
	c, err := Parse(resp.AccessToken)
	if err != nil {
		return nil, err
	}

	userID := c.String(claimSubject, claimLegacySubject)
	if userID == "" {
		return nil, ErrNoSubject
	}

	email := c.String(claimEmail, claimLegacyEmail)
	name := c.String(claimName, claimLegacyName, claimGivenName)
	if name == "" {
		name = email
	}

	roles := c.Strings(claimRole, claimLegacyRole)
	if roles == nil {
		roles = []string{}
	}

	var phoneNumber string
	if m := phoneEmailRe.FindStringSubmatch(email); m != nil {
		phoneNumber = "+" + m[1]
	}

	expiresIn := resp.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}

	return &Session{
		UserID:       userID,
		Email:        email,
		Name:         name,
		Picture:      c.String(claimPicture),
		PhoneNumber:  phoneNumber,
		Roles:        roles,
		TenantID:     tenantID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + expiresIn,
	}, nil
}
