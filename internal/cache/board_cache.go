package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyBoard = "board:tasks"

// BoardCache caches the rendered board's task list in Redis. The board
// is the hottest page; every write to tasks invalidates it.
type BoardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBoardCache returns a new BoardCache.
func NewBoardCache(rdb *redis.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{rdb: rdb, ttl: ttl}
}

// GetBoard returns the cached task list or nil if miss.
func (c *BoardCache) GetBoard(ctx context.Context) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyBoard).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetBoard stores the task list in cache.
func (c *BoardCache) SetBoard(ctx context.Context, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyBoard, b, c.ttl).Err()
}

// Invalidate removes the cached board (cache invalidation on write).
func (c *BoardCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyBoard).Err()
}
