package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/inventory/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	t.Parallel()

	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseNormalisesCase(t *testing.T) {
	t.Parallel()

	id := idx.New()
	parsed, err := idx.Parse(" " + string(toLower(id)) + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "not-an-id", "3fa85f64-5717-4562-b3fc-2c963f66afa6"} {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid, in)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)
	require.Less(t, a.String(), b.String())
}

func TestTimeExtraction(t *testing.T) {
	t.Parallel()

	tm := time.Unix(1700000000, 0).UTC()
	require.WithinDuration(t, tm, idx.NewAt(tm).Time(), time.Millisecond)
	require.True(t, idx.ID("nope").Time().IsZero())
}

func TestScan(t *testing.T) {
	t.Parallel()

	var id idx.ID
	require.NoError(t, id.Scan([]byte("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")))
	require.Equal(t, idx.MustParse("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"), id)

	require.NoError(t, id.Scan(nil))
	require.True(t, id.IsZero())

	require.Error(t, id.Scan(42))
}

func toLower(id idx.ID) idx.ID {
	b := []byte(id)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return idx.ID(b)
}
