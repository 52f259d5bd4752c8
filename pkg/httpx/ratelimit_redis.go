package httpx

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every replica. Burst is
// not applied; a window admits RequestsPerWindow requests.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	cfg    RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter keys counters as "<prefix>:<key>:<window start>".
func NewRedisLimiter(client redis.Cmdable, prefix string, cfg RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, cfg: cfg, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	windowStart := now.Truncate(l.cfg.Window)
	k := l.prefix + ":" + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.PExpire(ctx, k, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis limiter: %w", err)
	}

	if incr.Val() > int64(l.cfg.RequestsPerWindow) {
		return false, windowStart.Add(l.cfg.Window).Sub(now), nil
	}
	return true, 0, nil
}
