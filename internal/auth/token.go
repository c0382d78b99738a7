package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// SecretBytes is the entropy of a token secret (256 bits = 64 hex chars)
	SecretBytes = 32

	secretHexLen = SecretBytes * 2
)

var ErrMalformedToken = errors.New("malformed token")

// TokenManager generates and digests opaque bearer token secrets.
// The plaintext secret exists only in memory between generation and the
// HTTP response; the repository stores the SHA-256 digest.
type TokenManager struct{}

func NewTokenManager() *TokenManager {
	return &TokenManager{}
}

// GenerateSecret returns a new random secret and its digest.
// The caller must persist the digest before handing out the plaintext.
func (m *TokenManager) GenerateSecret() (plainSecret, digest string, err error) {
	randomBytes := make([]byte, SecretBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plainSecret = hex.EncodeToString(randomBytes)
	digest = m.digest(plainSecret)

	return plainSecret, digest, nil
}

// DigestSecret validates the format of a presented secret and returns its
// digest for lookup. A format mismatch can never match a stored token, so
// it is rejected up front.
func (m *TokenManager) DigestSecret(plainSecret string) (string, error) {
	if len(plainSecret) != secretHexLen {
		return "", ErrMalformedToken
	}
	if _, err := hex.DecodeString(plainSecret); err != nil {
		return "", ErrMalformedToken
	}
	return m.digest(plainSecret), nil
}

func (m *TokenManager) digest(plainSecret string) string {
	sum := sha256.Sum256([]byte(plainSecret))
	return hex.EncodeToString(sum[:])
}
