package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/inventory/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "inventory-test"

var issuedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newHS256Codec(t *testing.T) *jwtx.Codec {
	t.Helper()

	secret := make([]byte, 48)
	_, err := rand.Read(secret)
	require.NoError(t, err)

	signer, err := jwtx.NewHS256Signer(secret)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec(signer, testIssuer, 5*time.Minute)
	require.NoError(t, err)
	codec.Now = func() time.Time { return issuedAt }
	return codec
}

func at(codec *jwtx.Codec, tm time.Time) *jwtx.Codec {
	c := *codec
	c.Now = func() time.Time { return tm }
	return &c
}

func TestIssueEmbedsClaims(t *testing.T) {
	t.Parallel()

	codec := newHS256Codec(t)

	token, err := codec.Issue("user-1")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, testIssuer, claims.Issuer)
	require.True(t, claims.IssuedAt.Time.Equal(issuedAt))
	require.Equal(t, 5*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	_, err = codec.Issue("")
	require.Error(t, err)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t.Parallel()

	codec := newHS256Codec(t)
	token, err := codec.Issue("user-1")
	require.NoError(t, err)

	expiry := issuedAt.Add(codec.TTL)

	t.Run("one millisecond before expiry is accepted", func(t *testing.T) {
		_, err := at(codec, expiry.Add(-time.Millisecond)).Verify(token)
		require.NoError(t, err)
	})

	t.Run("exact expiry is accepted", func(t *testing.T) {
		_, err := at(codec, expiry).Verify(token)
		require.NoError(t, err)
	})

	t.Run("one millisecond after expiry is rejected", func(t *testing.T) {
		_, err := at(codec, expiry.Add(time.Millisecond)).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
		require.NotErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("skip expiry accepts expired token", func(t *testing.T) {
		claims, err := at(codec, expiry.Add(time.Hour)).Verify(token, jwtx.SkipExpiry())
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.Subject)
	})
}

func TestVerifyExpiryBoundarySubSecond(t *testing.T) {
	t.Parallel()

	// .900 has no exact float64 form; the decoded expiry must not lose it.
	for _, ms := range []int{1, 100, 900, 999} {
		issued := time.Date(2024, 3, 1, 12, 0, 0, ms*int(time.Millisecond), time.UTC)
		codec := at(newHS256Codec(t), issued)

		token, err := codec.Issue("user-1")
		require.NoError(t, err)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		require.True(t, claims.IssuedAt.Time.Equal(issued), "iat %s", claims.IssuedAt.Time)
		require.True(t, claims.ExpiresAt.Time.Equal(issued.Add(codec.TTL)), "exp %s", claims.ExpiresAt.Time)

		expiry := issued.Add(codec.TTL)

		_, err = at(codec, expiry.Add(-time.Millisecond)).Verify(token)
		require.NoError(t, err, "issued at .%03d, one millisecond before expiry", ms)

		_, err = at(codec, expiry).Verify(token)
		require.NoError(t, err, "issued at .%03d, exact expiry", ms)

		_, err = at(codec, expiry.Add(time.Millisecond)).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired, "issued at .%03d, one millisecond after expiry", ms)
	}
}

func TestClaimsDecodeRejectsBadDates(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{
		`{"sub":"u","exp":"soon"}`,
		`{"sub":"u","exp":1.2.3}`,
		`{"sub":"u","iat":true,"exp":1}`,
	} {
		var c jwtx.Claims
		require.Error(t, json.Unmarshal([]byte(payload), &c), payload)
	}

	var c jwtx.Claims
	require.NoError(t, json.Unmarshal([]byte(`{"sub":"u","exp":1709294700.9}`), &c))
	require.Nil(t, c.IssuedAt)
	require.True(t, c.ExpiresAt.Time.Equal(time.UnixMilli(1709294700900)))
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	codec := newHS256Codec(t)
	other := newHS256Codec(t)

	valid, err := codec.Issue("user-1")
	require.NoError(t, err)
	forged, err := other.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tamperedPayload := parts[0] + "." + parts[1] + "x." + parts[2]

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtx.NewAccessClaims("user-1", testIssuer, time.Minute, issuedAt)).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", parts[0] + "." + parts[1]},
		{"tampered payload", tamperedPayload},
		{"signed with another secret", forged},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			require.ErrorIs(t, err, jwtx.ErrMalformed)
		})
	}
}

func TestVerifyChecksSignatureBeforeExpiry(t *testing.T) {
	t.Parallel()

	codec := newHS256Codec(t)
	other := newHS256Codec(t)

	forged, err := other.Issue("user-1")
	require.NoError(t, err)

	// Expired AND forged must surface as malformed, never expired.
	_, err = at(codec, issuedAt.Add(24*time.Hour)).Verify(forged)
	require.ErrorIs(t, err, jwtx.ErrMalformed)
	require.NotErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	t.Parallel()

	codec := newHS256Codec(t)
	token, err := codec.Issue("user-1")
	require.NoError(t, err)

	other := *codec
	other.Issuer = "someone-else"
	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSACodec(t *testing.T) {
	t.Parallel()

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer, err := jwtx.NewEdDSASigner(key)
	require.NoError(t, err)
	require.Equal(t, "EdDSA", signer.Method().Alg())

	codec, err := jwtx.NewCodec(signer, "", 0)
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, codec.TTL)

	token, err := codec.Issue("user-2")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-2", claims.Subject)

	// An HS256 token never verifies against an EdDSA codec.
	_, err = codec.Verify(mustIssue(t, newHS256Codec(t), "user-2"))
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestNewSignerValidation(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewHS256Signer([]byte("short"))
	require.Error(t, err)

	_, err = jwtx.NewEdDSASigner(ed25519.PrivateKey([]byte("short")))
	require.Error(t, err)

	_, err = jwtx.NewCodec(nil, "", time.Minute)
	require.Error(t, err)
}

func mustIssue(t *testing.T, c *jwtx.Codec, sub string) string {
	t.Helper()
	token, err := c.Issue(sub)
	require.NoError(t, err)
	return token
}
