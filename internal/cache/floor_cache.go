package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// FloorCache handles Redis ZSET operations for the set of sessions currently
// running on the floor, scored by start time so the floor view lists oldest
// first.
type FloorCache interface {
	Add(ctx context.Context, sessionID string, startedAtUnix int64) error
	Remove(ctx context.Context, sessionID string) error
	ActiveIDs(ctx context.Context) ([]string, error)
}

const floorKey = "floor:active"

type floorCache struct {
	client *redis.Client
}

// NewFloorCache creates a new floor cache
func NewFloorCache(client *redis.Client) FloorCache {
	return &floorCache{
		client: client,
	}
}

func (c *floorCache) Add(ctx context.Context, sessionID string, startedAtUnix int64) error {
	return c.client.ZAdd(ctx, floorKey, redis.Z{
		Score:  float64(startedAtUnix),
		Member: sessionID,
	}).Err()
}

func (c *floorCache) Remove(ctx context.Context, sessionID string) error {
	return c.client.ZRem(ctx, floorKey, sessionID).Err()
}

func (c *floorCache) ActiveIDs(ctx context.Context) ([]string, error) {
	return c.client.ZRange(ctx, floorKey, 0, -1).Result()
}
