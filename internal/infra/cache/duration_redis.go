package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const durationPrefix = "appointment_type:duration:"

// DurationClient is the slice of *redis.Client the duration cache needs.
type DurationClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisDurationCache shares resolved appointment type durations between
// replicas. Cache errors are logged and treated as misses.
type RedisDurationCache struct {
	client DurationClient
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisDurationCache(client DurationClient, ttl time.Duration, log *zap.Logger) *RedisDurationCache {
	return &RedisDurationCache{client: client, ttl: ttl, log: log}
}

func (c *RedisDurationCache) GetDuration(ctx context.Context, appointmentType string) (time.Duration, bool) {
	val, err := c.client.Get(ctx, durationPrefix+appointmentType).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		c.log.Debug("duration cache read failed", zap.String("appointment_type", appointmentType), zap.Error(err))
		return 0, false
	}

	mins, err := strconv.Atoi(val)
	if err != nil || mins <= 0 {
		return 0, false
	}
	return time.Duration(mins) * time.Minute, true
}

func (c *RedisDurationCache) SetDuration(ctx context.Context, appointmentType string, d time.Duration) {
	mins := strconv.Itoa(int(d / time.Minute))
	if err := c.client.Set(ctx, durationPrefix+appointmentType, mins, c.ttl).Err(); err != nil {
		c.log.Debug("duration cache write failed", zap.String("appointment_type", appointmentType), zap.Error(err))
	}
}
