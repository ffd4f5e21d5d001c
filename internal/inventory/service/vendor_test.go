package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestVendorOwnershipIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	alice := signup(t, f, "alice")
	bob := signup(t, f, "bob")

	v, err := f.vendors.Create(ctx, alice, "  Acme  ")
	require.NoError(t, err)
	require.Equal(t, "Acme", v.Name)
	id := v.ID.String()

	t.Run("owner sees it", func(t *testing.T) {
		got, err := f.vendors.Get(ctx, alice, id)
		require.NoError(t, err)
		require.Equal(t, v.ID, got.ID)

		list, err := f.vendors.List(ctx, alice)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("others get not found", func(t *testing.T) {
		_, err := f.vendors.Get(ctx, bob, id)
		require.ErrorIs(t, err, service.ErrNotFound)

		_, err = f.vendors.Update(ctx, bob, id, "Stolen")
		require.ErrorIs(t, err, service.ErrNotFound)

		require.ErrorIs(t, f.vendors.Delete(ctx, bob, id), service.ErrNotFound)

		list, err := f.vendors.List(ctx, bob)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("foreign and absent look the same", func(t *testing.T) {
		_, foreign := f.vendors.Get(ctx, bob, id)
		_, absent := f.vendors.Get(ctx, bob, idx.New().String())
		require.Equal(t, foreign, absent)
	})

	t.Run("owner updates and deletes", func(t *testing.T) {
		got, err := f.vendors.Update(ctx, alice, id, "Acme Pty")
		require.NoError(t, err)
		require.Equal(t, "Acme Pty", got.Name)

		stored, err := f.vendors.Get(ctx, alice, id)
		require.NoError(t, err)
		require.Equal(t, "Acme Pty", stored.Name)

		require.NoError(t, f.vendors.Delete(ctx, alice, id))
		_, err = f.vendors.Get(ctx, alice, id)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestVendorValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	alice := signup(t, f, "alice")

	var verr *service.ValidationError

	_, err := f.vendors.Create(ctx, alice, "   ")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "vendor", verr.Field)

	_, err = f.vendors.Create(ctx, alice, strings.Repeat("x", 51))
	require.ErrorAs(t, err, &verr)

	_, err = f.vendors.Get(ctx, alice, "not-an-id")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "vendorID", verr.Field)
	require.Equal(t, "IDs provided is not valid.", verr.Message)

	_, err = f.vendors.List(ctx, idx.Zero)
	require.ErrorIs(t, err, service.ErrAuthentication)
}
