package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Token sizes in bytes before encoding.
const (
	TokenSize128 = 16 // 22 chars base64url
	TokenSize256 = 32 // 43 chars base64url
)

// ErrMalformedToken is returned by ValidateToken for strings that could not
// have been produced by GenerateToken with the given size.
var ErrMalformedToken = errors.New("cryptox: malformed token")

// GenerateToken returns size bytes from crypto/rand as an unpadded base64url
// string.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// ValidateToken reports whether token is the base64url encoding of exactly
// size bytes.
func ValidateToken(token string, size int) error {
	if len(token) != base64.RawURLEncoding.EncodedLen(size) {
		return ErrMalformedToken
	}
	if _, err := base64.RawURLEncoding.DecodeString(token); err != nil {
		return ErrMalformedToken
	}
	return nil
}

// FingerprintToken returns the SHA-256 of token, base64url encoded. Stores
// key refresh tokens by fingerprint so a leaked table cannot be replayed.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
