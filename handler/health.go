package handler

import (
	"context"
	"net/http"
)

// Health returns the GET /health handler. Dependency checks run on
// each request; any failure flips the status to degraded with a 503.
func Health(version, commit string, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}
		respondJSON(w, code, map[string]string{
			"status":  status,
			"version": version,
			"commit":  commit,
		})
	}
}
