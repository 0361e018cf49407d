// Package httpserver provides an http.Server wrapper with graceful
// shutdown on context cancellation or OS signals, env-driven
// configuration, and a health check handler for probes.
package httpserver
