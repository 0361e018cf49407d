// Package handler implements the storefront's HTTP surface: login
// flows (Google ID token and phone PIN), logout, profile updates,
// session introspection, and health. Handlers read the tenant and
// user resolved by the identity middleware from the request context.
package handler
