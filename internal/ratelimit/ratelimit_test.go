package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := logrus.New()
	return New(rdb, logger, "test:ratelimit:", limit, window), mr
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 6, time.Minute)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"), "request beyond the limit should be rejected")
}

func TestLimiter_WindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))

	mr.FastForward(time.Minute + time.Second)

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "5.6.7.8"))
}

func TestLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	mr.Close()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
}
