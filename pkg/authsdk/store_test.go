package authsdk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/inventory/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	t.Parallel()

	stores := map[string]authsdk.SessionStore{
		"memory": authsdk.NewMemoryStore(),
		"file":   authsdk.NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			empty, err := st.Load()
			require.NoError(t, err)
			require.True(t, empty.Empty())

			want := authsdk.Tokens{AccessToken: "a", RefreshToken: "r"}
			require.NoError(t, st.Save(want))

			got, err := st.Load()
			require.NoError(t, err)
			require.Equal(t, want, got)

			require.NoError(t, st.Clear())
			require.NoError(t, st.Clear())

			got, err = st.Load()
			require.NoError(t, err)
			require.True(t, got.Empty())
		})
	}
}

func TestFileStorePermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	st := authsdk.NewFileStore(path)
	require.NoError(t, st.Save(authsdk.Tokens{AccessToken: "a", RefreshToken: "r"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := authsdk.NewFileStore(path).Load()
	require.Error(t, err)
}
