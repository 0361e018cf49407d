package session

import "errors"

var (
	// ErrNoSecret is returned when the manager is created without a secret.
	ErrNoSecret = errors.New("session: no secret provided")

	// ErrSecretTooShort is returned when the secret is shorter than 32 characters.
	ErrSecretTooShort = errors.New("session: secret must be at least 32 characters")

	// ErrNoSession is returned when the request carries no session
	// cookie or the cookie cannot be unsealed. Callers treat both the
	// same way; the wrapped cause remains available for logging.
	ErrNoSession = errors.New("session: no session")

	// ErrUserMismatch is returned when a refresh-token rotation targets
	// a cookie whose user id does not match the token being refreshed.
	ErrUserMismatch = errors.New("session: cookie user does not match")
)
