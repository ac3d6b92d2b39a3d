package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const trendingKey = "skills:trending"

// Trending keeps a sorted set of skill view counts in Redis. Scores are
// best-effort; a Redis outage never breaks skill reads.
type Trending struct {
	client *redis.Client
}

func NewTrending(client *redis.Client) *Trending {
	return &Trending{
		client: client,
	}
}

func (t *Trending) Record(ctx context.Context, skillID uint) error {
	if err := t.client.ZIncrBy(ctx, trendingKey, 1, strconv.FormatUint(uint64(skillID), 10)).Err(); err != nil {
		return fmt.Errorf("t.client.ZIncrBy -> %w", err)
	}

	return nil
}

func (t *Trending) Top(ctx context.Context, limit int) ([]uint, error) {
	members, err := t.client.ZRevRange(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("t.client.ZRevRange -> %w", err)
	}

	ids := make([]uint, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}
