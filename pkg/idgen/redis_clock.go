package idgen

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Clock is the generator's time source, in Unix milliseconds.
type Clock interface {
	Now() int64
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (s *SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// RedisClock reads time from the Redis server via TIME. Anchoring IDs to
// the store's clock keeps them comparable with the TTLs the store applies,
// even when app-host clocks drift.
type RedisClock struct {
	client *redis.Client
}

func NewRedisClock(client *redis.Client) *RedisClock {
	return &RedisClock{client: client}
}

// Now falls back to the local clock when Redis is unreachable; the monotonic
// guard in Next catches any resulting regression.
func (r *RedisClock) Now() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := r.client.Time(ctx).Result()
	if err != nil {
		return time.Now().UnixMilli()
	}
	return res.UnixMilli()
}
