package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingPurgesExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	alice := signup(t, f, "alice")

	reg := prometheus.NewRegistry()
	hk := service.NewHousekeepingService(f.store, nil, time.Hour)
	hk.Metrics = service.NewSessionMetrics("inventory", reg)

	require.Zero(t, hk.Cleanup(ctx))

	hk.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	n, err := f.store.Sessions().CountSessionsByUser(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, n)

	expected := `
# HELP inventory_sessions_expired_purged_total Expired session rows removed by housekeeping.
# TYPE inventory_sessions_expired_purged_total counter
inventory_sessions_expired_purged_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "inventory_sessions_expired_purged_total"))
}

func TestHousekeepingStartStop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	hk := service.NewHousekeepingService(f.store, nil, 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Start()
	hk.Stop()
	hk.Stop()

	t.Run("stop without start returns", func(t *testing.T) {
		t.Parallel()

		idle := service.NewHousekeepingService(f.store, nil, time.Minute)
		done := make(chan struct{})
		go func() {
			idle.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Stop blocked on a service that was never started")
		}

		idle.Start()
		idle.Stop()
	})
}

func TestSessionMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	reg := prometheus.NewRegistry()
	f.sessions.Metrics = service.NewSessionMetrics("inventory", reg)

	pair, err := f.sessions.Signup(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	_, err = f.sessions.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	_, err = f.sessions.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)

	expected := `
# HELP inventory_sessions_refresh_failures_total Rejected refresh attempts.
# TYPE inventory_sessions_refresh_failures_total counter
inventory_sessions_refresh_failures_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "inventory_sessions_refresh_failures_total"))
}
