package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

const gridKeyPrefix = "schedule:"

// Grids go stale the moment any appointment of the dentist-day mutates,
// so the TTL is only a safety net; mutations invalidate explicitly.
const gridTTL = 60 * time.Second

// ScheduleCache keeps rendered slot grids per (dentist, day). A cache
// miss just means recomputing a 24-slot grid, so every error path
// degrades to a miss instead of failing the request.
type ScheduleCache struct {
	client *redis.Client
}

func NewScheduleCache(client *redis.Client) *ScheduleCache {
	return &ScheduleCache{client: client}
}

func gridKey(dentistID uint, date string) string {
	return fmt.Sprintf("%s%d:%s", gridKeyPrefix, dentistID, date)
}

func (c *ScheduleCache) GetGrid(
	ctx context.Context,
	dentistID uint,
	date string,
) ([]schedule.SlotView, bool) {

	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, gridKey(dentistID, date)).Result()
	if err != nil {
		return nil, false
	}

	var grid []schedule.SlotView
	if err := json.Unmarshal([]byte(data), &grid); err != nil {
		return nil, false
	}
	return grid, true
}

func (c *ScheduleCache) SetGrid(
	ctx context.Context,
	dentistID uint,
	date string,
	grid []schedule.SlotView,
) {

	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(grid)
	if err != nil {
		return
	}
	c.client.Set(ctx, gridKey(dentistID, date), data, gridTTL)
}

// InvalidateDay drops the cached grid after any mutation touching the
// dentist's day. Callers re-render from a fresh DaySchedule afterwards.
func (c *ScheduleCache) InvalidateDay(
	ctx context.Context,
	dentistID uint,
	date string,
) {

	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, gridKey(dentistID, date))
}
