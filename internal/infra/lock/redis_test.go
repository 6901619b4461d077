package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// fakeRedis keeps SET NX keys in memory and runs the release script's
// compare-and-delete.
type fakeRedis struct {
	mu    sync.Mutex
	keys  map[string]string
	ttls  map[string]time.Duration
	setNX error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setNX != nil {
		return redis.NewBoolResult(false, f.setNX)
	}
	if _, held := f.keys[key]; held {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if script != releaseScript {
		return redis.NewCmdResult(nil, errors.New("unexpected script"))
	}
	if f.keys[keys[0]] == args[0] {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) holder(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.keys[key]
	return v, ok
}

const bookingKey = "booking:PR001:2025-11-17"

func TestRedisLocker_LockAndRelease(t *testing.T) {
	fake := newFakeRedis()
	l := NewRedisLocker(fake, 3*time.Second, zap.NewNop())

	unlock, err := l.Lock(context.Background(), bookingKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, held := fake.holder(bookingKey)
	if !held || token == "" {
		t.Fatal("expected the key to carry a token")
	}
	if fake.ttls[bookingKey] != 3*time.Second {
		t.Errorf("ttl = %v, want 3s", fake.ttls[bookingKey])
	}

	unlock()
	if _, held := fake.holder(bookingKey); held {
		t.Error("release should delete the key")
	}
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	fake := newFakeRedis()
	l := NewRedisLocker(fake, time.Second, zap.NewNop())

	unlock, err := l.Lock(context.Background(), bookingKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// our lease expired and another replica took the key
	fake.mu.Lock()
	fake.keys[bookingKey] = "other-replica"
	fake.mu.Unlock()

	unlock()
	if token, _ := fake.holder(bookingKey); token != "other-replica" {
		t.Errorf("stale release removed another holder's lock, key now %q", token)
	}
}

func TestRedisLocker_TimesOutWhileHeld(t *testing.T) {
	fake := newFakeRedis()
	l := NewRedisLocker(fake, time.Second, zap.NewNop())

	unlock, err := l.Lock(context.Background(), bookingKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if _, err := l.Lock(ctx, bookingKey); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("expected ErrLockTimeout, got %v", err)
	}
}

func TestRedisLocker_ClientError(t *testing.T) {
	fake := newFakeRedis()
	fake.setNX = errors.New("connection refused")
	l := NewRedisLocker(fake, time.Second, zap.NewNop())

	if _, err := l.Lock(context.Background(), bookingKey); err == nil || errors.Is(err, ErrLockTimeout) {
		t.Errorf("expected the client error, got %v", err)
	}
}

func TestRedisLocker_DefaultTTL(t *testing.T) {
	if l := NewRedisLocker(newFakeRedis(), 0, zap.NewNop()); l.ttl != 5*time.Second {
		t.Errorf("ttl = %v, want 5s", l.ttl)
	}
}
