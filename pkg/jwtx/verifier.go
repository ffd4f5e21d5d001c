package jwtx

import (
	"errors"
	"fmt"
)

// Verifier checks a signed access token and returns its claims.
type Verifier interface {
	Verify(token string, opts ...VerifyOption) (Claims, error)
}

var (
	// ErrMalformed covers every token whose signature could not be
	// established: garbled encoding, wrong algorithm, forged signature.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrInvalidSig is a structurally sound token with a bad signature.
	ErrInvalidSig = fmt.Errorf("%w: invalid signature", ErrMalformed)

	// ErrInvalidClaim is a validly signed token missing a required claim.
	ErrInvalidClaim = fmt.Errorf("%w: invalid claims", ErrMalformed)

	// ErrIssuer is a validly signed token minted for another issuer.
	ErrIssuer = fmt.Errorf("%w: issuer mismatch", ErrMalformed)

	// ErrExpired is a validly signed token past its expiry.
	ErrExpired = errors.New("jwtx: token expired")
)

type verifyConfig struct {
	skipExpiry bool
}

// VerifyOption adjusts a single Verify call.
type VerifyOption func(*verifyConfig)

// SkipExpiry accepts tokens past their expiry. The signature is still
// checked.
func SkipExpiry() VerifyOption {
	return func(c *verifyConfig) { c.skipExpiry = true }
}
