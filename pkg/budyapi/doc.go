// Package budyapi is the client for the Budy backend's auth surface:
// the OAuth-style token endpoint at /connect/token (refresh_token,
// google_id_token and phone_pin grants) and the phone PIN request
// endpoint.
//
// RefreshToken is the interesting path. Under load many concurrent
// requests can observe the same expiring access token and try to
// refresh it with the same refresh token; the client collapses them
// into one exchange with a singleflight group, keyed by a fixed-length
// prefix of the refresh token, and hands every waiter the same result.
// Entries are removed the moment an exchange settles, so this is
// deduplication of in-flight work, not a cache.
package budyapi
