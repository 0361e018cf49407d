package budyapi

import "time"

// Config holds Budy backend API client configuration.
type Config struct {
	// BaseURL is the backend API base, without a trailing slash.
	BaseURL string `env:"BUDY_API_BASE_URL" envDefault:"https://api.budy.app"`

	// ClientID identifies this storefront to the token endpoint.
	ClientID string `env:"BUDY_CLIENT_ID" envDefault:"Budy_Shop"`

	// Scope is requested on every token exchange. offline_access makes
	// the issuer return a refresh token.
	Scope string `env:"BUDY_OAUTH_SCOPE" envDefault:"offline_access Budy"`

	// Timeout bounds every call to the backend. A hung token exchange
	// stalls every request waiting on the same refresh, so this must
	// stay finite.
	Timeout time.Duration `env:"BUDY_HTTP_TIMEOUT" envDefault:"15s"`
}
