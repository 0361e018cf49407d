package session

// Config holds session cookie configuration.
type Config struct {
	// CookieName is the session cookie name.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"budy_shop_session"`

	// Secret seals and unseals the cookie payload. Must be at least 32
	// characters.
	Secret string `env:"SESSION_SECRET,required"`

	// MaxAge is the cookie lifetime in seconds. It matches the refresh
	// token lifetime: 30 days.
	MaxAge int `env:"SESSION_MAX_AGE" envDefault:"2592000"`

	// Secure marks the cookie Secure. Disable only for local HTTP
	// development.
	Secure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}
