// Package session manages the storefront's user sessions.
//
// A session has two halves with different lifetimes. The durable half
// is an encrypted cookie (see pkg/sealing) holding identity claims and
// the long-lived refresh token, bounded at 30 days to match it. The
// volatile half is a process-local cache mapping user id to the current
// short-lived access token. The access token is never written into the
// cookie; after a restart or cache miss it is recovered with one
// refresh-token exchange.
//
// Manager.Get reflects this split: a readable cookie with no valid
// cached token returns session data with an empty access token, which
// means "refresh me", while a missing or tampered cookie returns
// ErrNoSession, which means "anonymous".
package session
