package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps snapshots in Redis, sharing them between machines.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(opt *redis.Options, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{Client: client, TTL: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Snapshot, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *RedisCache) Set(ctx context.Context, key string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, data, c.TTL).Err()
}

func (c *RedisCache) Close() error { return c.Client.Close() }
