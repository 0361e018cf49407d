// Package redis provides Redis connection establishment with retry
// and env-driven configuration, plus a health check for probes.
package redis
