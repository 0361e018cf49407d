package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant adds a tenant to the context.
func WithTenant(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, contextKey{}, info)
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant is found.
func FromContext(ctx context.Context) (*Info, bool) {
	info, ok := ctx.Value(contextKey{}).(*Info)
	return info, ok && info != nil
}

// LoggerExtractor returns a logger context extractor that injects the
// tenant id into every log record carrying a resolved tenant.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if info, ok := FromContext(ctx); ok {
			return slog.String("tenant_id", info.ID), true
		}
		return slog.Attr{}, false
	}
}
