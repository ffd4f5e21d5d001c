package jwtx

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Precision of iat and exp on the wire.
const Precision = time.Millisecond

func init() {
	jwt.TimePrecision = Precision
}

// Default lifetimes. Refresh tokens are opaque and live in the store; the
// constant lives here so both sides of the pair are configured together.
const (
	DefaultAccessTokenTTL  = 5 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims carried by an access token: subject, issued-at and expiry, plus an
// issuer when one is configured.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds claims for subject with iat = now and
// exp = now + ttl, both at millisecond precision.
func NewAccessClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC().Truncate(Precision)

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateExpiryAt reports ErrExpired when at is strictly after exp. A
// token is still valid at the exact instant of its expiry.
func (c *Claims) ValidateExpiryAt(at time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if at.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateIssuer checks the issuer when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// UnmarshalJSON decodes iat and exp from their decimal text. The library
// goes through float64, which can drop the last millisecond.
func (c *Claims) UnmarshalJSON(b []byte) error {
	var raw struct {
		jwt.RegisteredClaims
		IssuedAt  json.Number `json:"iat,omitempty"`
		ExpiresAt json.Number `json:"exp,omitempty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	iat, err := parseNumericDate(raw.IssuedAt)
	if err != nil {
		return fmt.Errorf("iat: %w", err)
	}
	exp, err := parseNumericDate(raw.ExpiresAt)
	if err != nil {
		return fmt.Errorf("exp: %w", err)
	}

	c.RegisteredClaims = raw.RegisteredClaims
	c.IssuedAt = iat
	c.ExpiresAt = exp
	return nil
}

// parseNumericDate reads seconds since the epoch with an optional
// fraction. An empty number is an absent claim.
func parseNumericDate(n json.Number) (*jwt.NumericDate, error) {
	s := n.String()
	if s == "" {
		return nil, nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return nil, err
	}

	var nsec int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		if nsec, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return nil, err
		}
	}

	return &jwt.NumericDate{Time: time.Unix(sec, nsec).UTC().Truncate(Precision)}, nil
}
