package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CheckoutLock serializes checkout attempts per user so two requests cannot
// snapshot the same cart concurrently.
type CheckoutLock interface {
	TryLock(ctx context.Context, userID uint64) (bool, error)
	Unlock(ctx context.Context, userID uint64) error
}

type RedisCheckoutLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCheckoutLock(rdb *redis.Client, ttl time.Duration) *RedisCheckoutLock {
	return &RedisCheckoutLock{rdb: rdb, ttl: ttl}
}

func (l *RedisCheckoutLock) TryLock(ctx context.Context, userID uint64) (bool, error) {
	return l.rdb.SetNX(ctx, key(userID), "1", l.ttl).Result()
}

func (l *RedisCheckoutLock) Unlock(ctx context.Context, userID uint64) error {
	return l.rdb.Del(ctx, key(userID)).Err()
}

func key(userID uint64) string {
	return fmt.Sprintf("checkout:lock:%d", userID)
}

var _ CheckoutLock = (*RedisCheckoutLock)(nil)
