package tenant

import "time"

// Config holds tenant resolution configuration.
type Config struct {
	// RootDomain is the apex domain storefronts live under; tenant
	// subdomains are the labels left of it.
	RootDomain string `env:"TENANT_ROOT_DOMAIN" envDefault:"budy.app"`

	// Lookup selects the provider backend: "http" for the tenant-lookup
	// endpoint, "mongo" for a direct query against the tenants collection.
	Lookup string `env:"TENANT_LOOKUP" envDefault:"http"`

	// FallbackID and FallbackName define the development fallback
	// tenant applied when a request carries no real subdomain. Both
	// must be set for the fallback to take effect.
	FallbackID   string `env:"TENANT_FALLBACK_ID" envDefault:""`
	FallbackName string `env:"TENANT_FALLBACK_NAME" envDefault:""`

	// CacheBackend selects where resolved tenants are cached: "memory"
	// for process-local, "redis" to share lookups across instances.
	CacheBackend string `env:"TENANT_CACHE" envDefault:"memory"`

	// CacheTTL bounds how long a resolved tenant is served from cache.
	CacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}

// Fallback returns the configured development fallback tenant, or nil
// when the fallback is not configured.
func (c Config) Fallback() *Info {
	if c.FallbackID == "" || c.FallbackName == "" {
		return nil
	}
	return &Info{
		ID:             c.FallbackID,
		Name:           c.FallbackName,
		NormalizedName: normalize(c.FallbackName),
	}
}
