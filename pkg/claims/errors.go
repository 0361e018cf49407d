package claims

import "errors"

var (
	// ErrMalformedToken is returned when an access token does not have
	// three dot-separated segments or its payload is not valid JSON.
	ErrMalformedToken = errors.New("claims: malformed access token")

	// ErrNoSubject is returned when no user id claim can be resolved.
	ErrNoSubject = errors.New("claims: no subject claim in token")
)
