package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrLockTimeout = errors.New("lock: timed out waiting for booking lock")

// releaseScript deletes the key only if it still carries our token, so an
// expired holder can never release somebody else's lock.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

// LockClient is the slice of *redis.Client the locker needs.
type LockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker is a single-instance SET NX PX lock shared by every API
// replica pointing at the same Redis.
type RedisLocker struct {
	client LockClient
	ttl    time.Duration
	retry  time.Duration
	log    *zap.Logger
}

func NewRedisLocker(client LockClient, ttl time.Duration, log *zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  25 * time.Millisecond,
		log:    log,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrLockTimeout
			}
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, ErrLockTimeout
		}
	}

	return func() {
		// the request context may already be done; release regardless
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := l.client.Eval(rctx, releaseScript, []string{key}, token).Err(); err != nil {
			l.log.Warn("failed to release booking lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
