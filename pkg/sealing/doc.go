// Package sealing provides authenticated encryption of arbitrary JSON
// payloads into opaque, transportable strings, used for the storefront
// session cookie.
//
// Seal serializes the payload to JSON, compresses it with raw DEFLATE
// and encrypts it with AES-256 in GCM mode. The key is derived from the
// configured secret with scrypt and a fresh 16-byte salt on every call,
// so two seals of the same payload never produce the same output and a
// leaked cookie cannot be brute-forced cheaply.
//
// The sealed value is URL-safe base64 of:
//
//	salt(16) || nonce(12) || authTag(16) || ciphertext
//
// Unseal reverses the process and fails closed: any malformed encoding,
// truncated buffer, wrong secret or tampered byte yields an error, never
// a partially decoded payload.
//
// # Usage
//
//	sealed, err := sealing.Seal(payload, secret)
//	if err != nil {
//	    // handle error
//	}
//
//	var payload session.Payload
//	if err := sealing.Unseal(sealed, secret, &payload); err != nil {
//	    // treat as "no session"
//	}
//
// Note that scrypt derivation runs on every call and is not cheap;
// callers on hot request paths should expect a few milliseconds each.
package sealing
