package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		b, err := GenerateToken(size)
		require.NoError(t, err)

		require.NotEqual(t, a, b)
		require.NoError(t, ValidateToken(a, size))
	}

	_, err := GenerateToken(0)
	require.Error(t, err)
	require.Panics(t, func() { MustGenerateToken(-1) })
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	good := MustGenerateToken(TokenSize256)
	require.Len(t, good, 43)
	require.NoError(t, ValidateToken(good, TokenSize256))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"too short", good[:42]},
		{"too long", good + "A"},
		{"bad alphabet", "+" + good[1:]},
		{"uuid", "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, ValidateToken(tt.token, TokenSize256), ErrMalformedToken)
		})
	}
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	a := FingerprintToken("token-1")
	require.Equal(t, a, FingerprintToken("token-1"))
	require.NotEqual(t, a, FingerprintToken("token-2"))
	require.Len(t, a, 43)
}
