package sealing

import (
	"bytes"
	"compress/flate"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	keyLength     = 32
	saltLength    = 16
	nonceLength   = 12
	authTagLength = 16

	// scrypt cost parameters. Derivation runs per call so a stolen
	// ciphertext cannot be brute-forced cheaply; the flip side is CPU
	// cost on every seal/unseal under load.
	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

// deriveKey stretches the secret into an AES-256 key using scrypt with
// a per-payload salt.
func deriveKey(secret string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(secret), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// Seal serializes v to JSON, compresses it and encrypts it with
// AES-256-GCM under a key derived from secret. The result is a URL-safe
// base64 string laid out as salt(16) || nonce(12) || tag(16) || ciphertext.
func Seal(v any, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	compressed, err := deflate(plaintext)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	key, err := deriveKey(secret, salt)
	if err != nil {
		return "", err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	// gcm.Seal appends ciphertext||tag; the wire format wants the tag
	// before the ciphertext, so split and reorder.
	sealed := aead.Seal(nil, nonce, compressed, nil)
	ciphertext := sealed[:len(sealed)-authTagLength]
	tag := sealed[len(sealed)-authTagLength:]

	out := make([]byte, 0, saltLength+nonceLength+authTagLength+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, ciphertext...)

	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Unseal reverses Seal, decoding the sealed string with the given
// secret into dst. It returns ErrMalformed for structurally invalid
// input and ErrDecryptionFailed for a wrong secret or tampered data.
func Unseal(sealed, secret string, dst any) error {
	if secret == "" {
		return ErrNoSecret
	}

	buf, err := decodeBase64URL(sealed)
	if err != nil {
		return ErrMalformed
	}

	if len(buf) < saltLength+nonceLength+authTagLength {
		return ErrMalformed
	}

	salt := buf[:saltLength]
	nonce := buf[saltLength : saltLength+nonceLength]
	tag := buf[saltLength+nonceLength : saltLength+nonceLength+authTagLength]
	ciphertext := buf[saltLength+nonceLength+authTagLength:]

	key, err := deriveKey(secret, salt)
	if err != nil {
		return err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return errors.Join(ErrDecryptionFailed, err)
	}

	// Rebuild the ciphertext||tag ordering gcm.Open expects.
	sealedBytes := make([]byte, 0, len(ciphertext)+authTagLength)
	sealedBytes = append(sealedBytes, ciphertext...)
	sealedBytes = append(sealedBytes, tag...)

	compressed, err := aead.Open(nil, nonce, sealedBytes, nil)
	if err != nil {
		return ErrDecryptionFailed
	}

	plaintext, err := inflate(compressed)
	if err != nil {
		return ErrMalformed
	}

	if err := json.Unmarshal(plaintext, dst); err != nil {
		return ErrMalformed
	}

	return nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// deflate compresses data as a raw DEFLATE stream (no zlib/gzip wrapper).
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}

// decodeBase64URL accepts both padded and unpadded URL-safe base64 so
// sealed values produced by older clients remain readable.
func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
