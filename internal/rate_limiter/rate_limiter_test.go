package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestFixedWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := config.RateLimiterConfig{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}
	rl := NewFixedWindowLimiter(cfg, newMemoryStore(clock.now), zap.NewNop().Sugar())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	clock.t = clock.t.Add(20 * time.Second)
	ok, retry := rl.Allow(ctx, "1.2.3.4")
	if ok {
		t.Fatal("third request in the window should be limited")
	}
	if retry != 40*time.Second {
		t.Errorf("expected retry after 40s, got %v", retry)
	}

	if ok, _ := rl.Allow(ctx, "5.6.7.8"); !ok {
		t.Error("other keys have their own window")
	}

	clock.t = clock.t.Add(40 * time.Second)
	if ok, _ := rl.Allow(ctx, "1.2.3.4"); !ok {
		t.Error("a new window should reset the count")
	}
}

func TestDisabledLimiter(t *testing.T) {
	cfg := config.RateLimiterConfig{RequestsPerTimeFrame: 1, TimeFrame: time.Minute, Enabled: false}
	rl := NewRateLimiter(cfg, nil, zap.NewNop().Sugar())

	for i := 0; i < 5; i++ {
		if ok, _ := rl.Allow(context.Background(), "k"); !ok {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestStoreFailureAllows(t *testing.T) {
	cfg := config.RateLimiterConfig{RequestsPerTimeFrame: 1, TimeFrame: time.Minute, Enabled: true}
	rl := NewFixedWindowLimiter(cfg, failingStore{}, zap.NewNop().Sugar())

	if ok, _ := rl.Allow(context.Background(), "k"); !ok {
		t.Error("store failure should not block requests")
	}
}

func TestRedisHealthyNil(t *testing.T) {
	var r *Redis
	if r.Healthy(context.Background()) {
		t.Error("nil redis is never healthy")
	}
}
