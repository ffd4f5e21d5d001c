package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/pkg/idx"
	"github.com/stretchr/testify/require"
)

func signup(t *testing.T, f *fixture, username string) idx.ID {
	t.Helper()

	pair, err := f.sessions.Signup(context.Background(), username, "hunter2hunter2")
	require.NoError(t, err)
	claims, err := f.codec.Verify(pair.AccessToken)
	require.NoError(t, err)
	return idx.ID(claims.Subject)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	alice := signup(t, f, "alice")
	bob := signup(t, f, "bob")

	p, err := f.users.Profile(ctx, alice, "alice")
	require.NoError(t, err)
	require.True(t, p.Self)

	p, err = f.users.Profile(ctx, bob, "alice")
	require.NoError(t, err)
	require.False(t, p.Self)

	p, err = f.users.Profile(ctx, idx.Zero, "ALICE")
	require.NoError(t, err)
	require.Equal(t, "alice", p.Username)
	require.False(t, p.Self)

	_, err = f.users.Profile(ctx, idx.Zero, "nobody")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	alice := signup(t, f, "alice")
	bob := signup(t, f, "bob")

	_, err := f.vendors.Create(ctx, alice, "Acme")
	require.NoError(t, err)

	require.ErrorIs(t, f.users.DeleteAccount(ctx, bob, "alice"), service.ErrNotFound)
	require.ErrorIs(t, f.users.DeleteAccount(ctx, bob, "nobody"), service.ErrNotFound)
	require.ErrorIs(t, f.users.DeleteAccount(ctx, idx.Zero, "alice"), service.ErrAuthentication)

	require.NoError(t, f.users.DeleteAccount(ctx, alice, "alice"))

	_, err = f.users.Me(ctx, alice)
	require.ErrorIs(t, err, service.ErrNotFound)

	n, err := f.store.Sessions().CountSessionsByUser(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, n)

	vendors, err := f.store.Vendors().ListVendorsByUser(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, vendors)
}
