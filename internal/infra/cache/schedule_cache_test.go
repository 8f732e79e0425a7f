package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

func newTestCache(t *testing.T) (*ScheduleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewScheduleCache(client), mr
}

func TestGridRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	grid := []schedule.SlotView{
		{Time: "08:00", End: "08:30", Available: true},
		{Time: "08:30", End: "09:00", Available: false, Reason: schedule.SlotReasonConflict},
	}

	_, ok := c.GetGrid(ctx, 1, "2026-09-15")
	assert.False(t, ok, "cold cache should miss")

	c.SetGrid(ctx, 1, "2026-09-15", grid)

	got, ok := c.GetGrid(ctx, 1, "2026-09-15")
	require.True(t, ok)
	assert.Equal(t, grid, got)

	// Another dentist-day is a different key.
	_, ok = c.GetGrid(ctx, 2, "2026-09-15")
	assert.False(t, ok)
}

func TestInvalidateDay(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetGrid(ctx, 1, "2026-09-15", []schedule.SlotView{{Time: "08:00", End: "08:30", Available: true}})
	c.InvalidateDay(ctx, 1, "2026-09-15")

	_, ok := c.GetGrid(ctx, 1, "2026-09-15")
	assert.False(t, ok, "invalidated grid must not come back")
}

func TestGridExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetGrid(ctx, 1, "2026-09-15", []schedule.SlotView{{Time: "08:00", End: "08:30", Available: true}})
	mr.FastForward(gridTTL * 2)

	_, ok := c.GetGrid(ctx, 1, "2026-09-15")
	assert.False(t, ok, "grid should expire after the TTL")
}

func TestNilCacheIsInert(t *testing.T) {
	var c *ScheduleCache
	ctx := context.Background()

	// Handlers run with caching disabled when redis is absent.
	c.SetGrid(ctx, 1, "2026-09-15", nil)
	c.InvalidateDay(ctx, 1, "2026-09-15")
	_, ok := c.GetGrid(ctx, 1, "2026-09-15")
	assert.False(t, ok)
}
