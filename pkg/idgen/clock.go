package idgen

import (
	"context"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

// Clock abstracts the time source for stamp generation.
type Clock interface {
	// Now returns the current timestamp in milliseconds since the Unix epoch.
	Now() int64
}

// SystemClock uses the local system time.
type SystemClock struct{}

func (s *SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// RedisClock reads time from the Redis TIME command so that several
// server instances writing into one shared directory agree on "now".
type RedisClock struct {
	client  redis.UniversalClient
	timeout time.Duration
}

func NewRedisClock(client redis.UniversalClient, timeout time.Duration) *RedisClock {
	if timeout <= 0 {
		timeout = 200 * time.Millisecond
	}
	return &RedisClock{
		client:  client,
		timeout: timeout,
	}
}

func (r *RedisClock) Now() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	res, err := r.client.Time(ctx).Result()
	if err != nil {
		// Stamps stay strictly increasing through the Stamper either way.
		logger.Debugw("Redis clock unavailable, falling back to system time", "error", err.Error())
		return time.Now().UnixMilli()
	}

	return res.UnixMilli()
}
