package cryptox

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// SecretSize is the number of random bytes in a signing secret.
const SecretSize = 48

// ErrShortSecret is returned when a loaded secret decodes to fewer than
// 32 bytes.
var ErrShortSecret = errors.New("cryptox: signing secret is too short")

// GenerateSecret returns SecretSize random bytes, standard base64 encoded.
func GenerateSecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// LoadOrCreateSecret reads the base64 secret stored at path, generating and
// persisting a new one when the file is missing. The decoded bytes are
// returned.
func LoadOrCreateSecret(path string) ([]byte, error) {
	data, err := loadOrCreate(path, func() ([]byte, error) {
		s, err := GenerateSecret()
		return []byte(s), err
	})
	if err != nil {
		return nil, err
	}

	secret, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, fmt.Errorf("cryptox: decode secret %s: %w", path, err)
	}
	if len(secret) < 32 {
		return nil, ErrShortSecret
	}
	return secret, nil
}
