package jwtx

import "github.com/golang-jwt/jwt/v5"

// Signer signs claims and exposes the key used to check its own signatures.
type Signer interface {
	Method() jwt.SigningMethod
	Sign(Claims) (string, error)
	VerificationKey() any
	Validate() error
}
