// Package mongo provides MongoDB client construction with retry and
// env-driven configuration, plus a health check for probes.
package mongo
