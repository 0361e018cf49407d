package sealing

import "errors"

var (
	// ErrNoSecret is returned when an empty secret is provided.
	ErrNoSecret = errors.New("sealing: no secret provided")

	// ErrMalformed is returned when the sealed value is not valid
	// base64, is truncated, or decompresses to invalid JSON.
	ErrMalformed = errors.New("sealing: malformed sealed value")

	// ErrEncryptionFailed is returned when sealing fails.
	ErrEncryptionFailed = errors.New("sealing: encryption failed")

	// ErrDecryptionFailed is returned for a wrong secret or tampered
	// ciphertext. It is indistinguishable on purpose.
	ErrDecryptionFailed = errors.New("sealing: decryption failed")

	// ErrKeyDerivationFailed is returned when scrypt rejects its parameters.
	ErrKeyDerivationFailed = errors.New("sealing: key derivation failed")
)
