package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("date lock not acquired")
)

// Locker guards the booking service's check-then-act sections. The lock is
// keyed per calendar date: two bookings on different days never contend,
// two bookings on the same day are serialized across every instance.
type Locker interface {
	WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
}

type redisDateLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDateLocker creates a locker backed by a per-date Redis key.
func NewRedisDateLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisDateLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisDateLocker) WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:agenda:%s", date)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire date lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisDateLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release date lock: %w", err)
	}
	return nil
}

// NoopLocker runs the critical section without distributed locking. Used in
// tests and single-instance runs without Redis; the in-process store mutex
// still applies.
type NoopLocker struct{}

func (NoopLocker) WithDateLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
