package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares one fixed window per client across instances using
// INCR with an expiry set on the first hit. It fails open: if Redis is
// unreachable the request is allowed and the error logged, since the check
// is advisory.
type RedisLimiter struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
	Prefix string
}

func NewRedisLimiter(addr string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		Limit:  limit,
		Window: window,
		Prefix: "ratelimit",
	}
}

func (l *RedisLimiter) Allow(clientID string) bool {
	if l.Limit <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := l.Prefix + ":" + clientID
	n, err := l.Client.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("[RATELIMIT] redis incr failed: %v", err)
		return true
	}
	if n == 1 {
		if err := l.Client.Expire(ctx, key, l.Window).Err(); err != nil {
			log.Printf("[RATELIMIT] redis expire failed: %v", err)
		}
	}
	return n <= int64(l.Limit)
}
