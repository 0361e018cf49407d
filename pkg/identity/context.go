package identity

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithIdentity adds the resolved identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the identity from the context. The zero
// Identity (nil tenant, nil user) is returned when the middleware did
// not run.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(contextKey{}).(Identity)
	return id
}

// UserFromContext retrieves the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	id := FromContext(ctx)
	return id.User, id.User != nil
}

// LoggerExtractor returns a logger context extractor that injects the
// user id into log records for authenticated requests.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if user, ok := UserFromContext(ctx); ok {
			return slog.String("user_id", user.ID), true
		}
		return slog.Attr{}, false
	}
}
