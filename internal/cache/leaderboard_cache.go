package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:points"

// LeaderboardCache handles Redis ZSET operations for the global points
// leaderboard.
type LeaderboardCache interface {
	IncrementPoints(ctx context.Context, userID string, delta int) error
	GetTop(ctx context.Context, limit int) ([]redis.Z, error)
	GetRank(ctx context.Context, userID string) (int64, error)
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) IncrementPoints(ctx context.Context, userID string, delta int) error {
	return c.client.ZIncrBy(ctx, leaderboardKey, float64(delta), userID).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]redis.Z, error) {
	return c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
}

func (c *leaderboardCache) GetRank(ctx context.Context, userID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, leaderboardKey, userID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
