package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest HMAC secret NewHS256Signer accepts.
const MinSecretSize = 32

// HS256Signer signs with HMAC-SHA256 over a server-held secret. The same
// value signs and verifies.
type HS256Signer struct {
	secret []byte
}

// NewHS256Signer copies secret into a new signer.
func NewHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}

	s := &HS256Signer{secret: make([]byte, len(secret))}
	copy(s.secret, secret)
	return s, nil
}

func (s *HS256Signer) Method() jwt.SigningMethod { return jwt.SigningMethodHS256 }

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *HS256Signer) VerificationKey() any { return s.secret }

func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinSecretSize {
		return errors.New("jwtx: HS256 secret too short")
	}
	return nil
}
