package budyapi

import "errors"

var (
	// ErrBackendUnavailable is returned for transport failures and
	// unreadable responses from the backend.
	ErrBackendUnavailable = errors.New("budyapi: backend unavailable")

	// ErrRefreshFailed is returned when a refresh-token exchange does
	// not succeed. The session holding that refresh token is dead.
	ErrRefreshFailed = errors.New("budyapi: token refresh failed")
)
