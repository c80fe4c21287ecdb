package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGuardBlocksWhenClientLimitExceeded(t *testing.T) {
	store := NewMemoryStore()
	g := NewGuard(100, 1.0, store)

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, g.Record(ctx, "10.0.0.1", 0.9, now))

	allowed, reason, err := g.Allow(ctx, "10.0.0.1", 0.2, now)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Contains(t, reason, "client budget exceeded")

	allowed, _, err = g.Allow(ctx, "10.0.0.2", 0.2, now)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestGuardBlocksWhenDailyLimitExceeded(t *testing.T) {
	store := NewMemoryStore()
	g := NewGuard(1.0, 10.0, store)

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, g.Record(ctx, "10.0.0.1", 0.95, now))

	allowed, reason, err := g.Allow(ctx, "10.0.0.2", 0.1, now)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Contains(t, reason, "daily budget exceeded")
}

func TestGuardDisabled(t *testing.T) {
	var nilGuard *Guard
	allowed, _, err := nilGuard.Allow(context.Background(), "x", 1e6, time.Now())
	require.NoError(t, err)
	require.True(t, allowed)

	g := NewGuard(0, 0, NewMemoryStore())
	require.False(t, g.Enabled())
	require.NoError(t, g.Record(context.Background(), "x", 5, time.Now()))
}

func TestMemoryStoreResetsOnNewDay(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	day1 := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Hour)

	require.NoError(t, store.AddSpend(ctx, "a", 0.5, day1))

	spent, err := store.GetDailySpend(ctx, day1)
	require.NoError(t, err)
	require.InDelta(t, 0.5, spent, 1e-9)

	spent, err = store.GetClientSpend(ctx, "a", day2)
	require.NoError(t, err)
	require.Zero(t, spent)

	require.NoError(t, store.AddSpend(ctx, "a", 0.25, day2))
	spent, err = store.GetClientSpend(ctx, "a", day2)
	require.NoError(t, err)
	require.InDelta(t, 0.25, spent, 1e-9)
}
