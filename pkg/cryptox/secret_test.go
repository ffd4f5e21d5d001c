package cryptox

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	s, err := GenerateSecret()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, SecretSize)
}

func TestLoadOrCreateSecret(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "secret")

	first, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	require.Len(t, first, SecretSize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrCreateSecret_Rejects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte(base64.StdEncoding.EncodeToString([]byte("tiny"))), 0o600))
	_, err := LoadOrCreateSecret(short)
	require.ErrorIs(t, err, ErrShortSecret)

	garbage := filepath.Join(dir, "garbage")
	require.NoError(t, os.WriteFile(garbage, []byte("%%%"), 0o600))
	_, err = LoadOrCreateSecret(garbage)
	require.Error(t, err)
}
