package identity

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/budyapp/storefront/pkg/budyapi"
	"github.com/budyapp/storefront/pkg/session"
	"github.com/budyapp/storefront/pkg/tenant"
)

// DefaultExpiryBuffer is how close to expiry an access token may get
// before it is refreshed proactively, in seconds. Refreshing a token
// that is about to expire mid-request avoids downstream 401s.
const DefaultExpiryBuffer = 60

// Refresher exchanges a refresh token for a new access token.
// *budyapi.Client satisfies it.
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken, tenantID string) (*budyapi.RefreshResult, error)
}

type config struct {
	rootDomain   string
	fallback     *tenant.Info
	expiryBuffer int64
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithFallbackTenant sets the tenant applied when a request carries no
// real subdomain (local development, direct IP access).
func WithFallbackTenant(info *tenant.Info) Option {
	return func(c *config) { c.fallback = info }
}

// WithExpiryBuffer overrides the refresh buffer in seconds.
func WithExpiryBuffer(seconds int64) Option {
	return func(c *config) {
		if seconds > 0 {
			c.expiryBuffer = seconds
		}
	}
}

// WithLogger sets a logger for session degradation events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Middleware resolves the request's {tenant, user} identity and stores
// it in the context.
//
// Per request it resolves the tenant from the Host header, loads the
// session from the cookie and, when the cached access token is missing
// or within the expiry buffer, performs one refresh-token exchange. A
// failed refresh is terminal: the session is cleared and the request
// proceeds anonymously. Every failure inside the pipeline degrades to
// a nil tenant or nil user, never to an error response.
func Middleware(tenants tenant.Provider, sessions *session.Manager, refresher Refresher, rootDomain string, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		rootDomain:   rootDomain,
		expiryBuffer: DefaultExpiryBuffer,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := Identity{
				Tenant: resolveTenant(ctx, cfg, tenants, r.Host),
				User:   resolveUser(ctx, cfg, sessions, refresher, w, r),
			}

			ctx = WithIdentity(ctx, id)
			if id.Tenant != nil {
				ctx = tenant.WithTenant(ctx, id.Tenant)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveTenant(ctx context.Context, cfg *config, tenants tenant.Provider, host string) *tenant.Info {
	subdomain, ok := tenant.ExtractSubdomain(host, cfg.rootDomain)
	if !ok {
		// No real subdomain: local dev or a reserved host. The
		// configured fallback applies here and only here.
		return cfg.fallback
	}

	info, err := tenants.Resolve(ctx, subdomain)
	if err != nil {
		cfg.logger.DebugContext(ctx, "tenant resolution failed",
			slog.String("subdomain", subdomain),
			slog.Any("error", err))
		return nil
	}
	return info
}

func resolveUser(ctx context.Context, cfg *config, sessions *session.Manager, refresher Refresher, w http.ResponseWriter, r *http.Request) *User {
	data, err := sessions.Get(r)
	if err != nil {
		// Missing or undecryptable cookie, both mean anonymous.
		return nil
	}

	if !data.NeedsRefresh(time.Now().Unix(), cfg.expiryBuffer) {
		return userFromSession(data, data.AccessToken)
	}

	if data.RefreshToken == "" {
		// Nothing to recover with; the cookie is useless now.
		sessions.Clear(w, r)
		return nil
	}

	result, err := refresher.RefreshToken(ctx, data.RefreshToken, data.TenantID)
	if err != nil {
		cfg.logger.InfoContext(ctx, "session refresh failed, clearing session",
			slog.String("user_id", data.UserID),
			slog.Any("error", err))
		sessions.Clear(w, r)
		return nil
	}

	sessions.CacheAccessToken(data.UserID, result.AccessToken, result.ExpiresAt)
	if result.RefreshToken != data.RefreshToken {
		if err := sessions.UpdateRefreshToken(w, r, data.UserID, result.RefreshToken); err != nil {
			cfg.logger.WarnContext(ctx, "failed to persist rotated refresh token",
				slog.String("user_id", data.UserID),
				slog.Any("error", err))
		}
	}

	return userFromSession(data, result.AccessToken)
}
