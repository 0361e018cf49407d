// Package claims decodes identity claims from access tokens issued by
// the Budy backend.
//
// Tokens arrive here only after the issuer has verified them, so the
// package decodes the payload segment without any signature check. It
// never accepts tokens from untrusted sources.
//
// The issuer has shipped two generations of claim names: short OIDC
// names (sub, email, name, role) and the long WS-* XML schema URIs.
// Lookups probe both, newest first, so sessions survive an issuer
// upgrade in either direction.
//
// ExtractSession turns a full token endpoint response into a normalized
// Session record, including the phone-number derivation for accounts
// registered by phone PIN (their synthetic email looks like
// "66933786822@phone.budy.app").
package claims
