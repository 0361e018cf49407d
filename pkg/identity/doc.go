// Package identity turns an inbound request into a {tenant, user}
// decision.
//
// The middleware composes the other identity packages in a fixed order:
// tenant resolution from the hostname, session load from the sealed
// cookie, and a deduplicated refresh-token exchange when the cached
// access token is missing or about to expire. The result, possibly
// with a nil tenant or nil user, rides the request context.
//
// Failures never surface as errors here. A tampered cookie, a dead
// refresh token and an unknown subdomain all degrade to the same
// anonymous/no-tenant shape, and downstream handlers decide what that
// means for them. The one side effect on the degradation path is
// session teardown: once a refresh fails there is nothing left to
// retry, so the cookie and cache entry are removed.
package identity
