package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DailyLimiter caps an action per user per UTC day using a Redis counter
// that expires at midnight.
type DailyLimiter struct {
	client *redis.Client
	prefix string
	limit  int
}

func NewDailyLimiter(client *redis.Client, prefix string, limit int) *DailyLimiter {
	return &DailyLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
	}
}

func (l *DailyLimiter) key(userId string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, userId, now.UTC().Format("2006-01-02"))
}

// Allow increments the user's daily counter and reports whether the action is
// within the limit. The remaining count is returned for response headers.
func (l *DailyLimiter) Allow(ctx context.Context, userId string) (bool, int, error) {
	now := time.Now()
	key := l.key(userId, now)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	if count == 1 {
		midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		if err := l.client.ExpireAt(ctx, key, midnight).Err(); err != nil {
			return false, 0, err
		}
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= int64(l.limit), remaining, nil
}

// Remaining reports how many actions the user has left today without
// consuming one.
func (l *DailyLimiter) Remaining(ctx context.Context, userId string) (int, error) {
	count, err := l.client.Get(ctx, l.key(userId, time.Now())).Int()
	if err != nil && err != redis.Nil {
		return 0, err
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
