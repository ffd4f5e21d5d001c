package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec issues and verifies access tokens. It holds no mutable state and
// is safe for concurrent use.
type Codec struct {
	signer Signer
	parser *jwt.Parser

	// Issuer is written into iss and, when set, required on verify.
	Issuer string

	// TTL is the lifetime of issued tokens.
	TTL time.Duration

	// Now is the clock used for iat and expiry checks.
	Now func() time.Time
}

// NewCodec builds a codec around signer.
func NewCodec(signer Signer, issuer string, ttl time.Duration) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("jwtx: nil signer")
	}
	if err := signer.Validate(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	return &Codec{
		signer: signer,
		// Claims are checked by hand below so the signature always comes
		// first and expiry can be skipped.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signer.Method().Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		Issuer: issuer,
		TTL:    ttl,
		Now:    time.Now,
	}, nil
}

// Issue returns a signed token for subject expiring TTL from now.
func (c *Codec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("jwtx: empty subject")
	}

	token, err := c.signer.Sign(NewAccessClaims(subject, c.Issuer, c.TTL, c.Now()))
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, nil
}

// Verify checks the signature of token and then, unless SkipExpiry is
// given, that it has not expired. Errors wrap ErrMalformed or ErrExpired.
func (c *Codec) Verify(token string, opts ...VerifyOption) (Claims, error) {
	var cfg verifyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var claims Claims
	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.signer.VerificationKey(), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Claims{}, ErrInvalidClaim
	}
	if err := claims.ValidateIssuer(c.Issuer); err != nil {
		return Claims{}, err
	}

	if !cfg.skipExpiry {
		if err := claims.ValidateExpiryAt(c.Now()); err != nil {
			return Claims{}, err
		}
	}

	return claims, nil
}

// Ready reports whether the codec can still sign tokens.
func (c *Codec) Ready() error {
	return c.signer.Validate()
}
