package ratelimiter

import (
	"context"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit:"

type FixedWindowRateLimiter struct {
	cfg    config.RateLimiterConfig
	store  windowStore
	logger *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, store windowStore, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{cfg: cfg, store: store, logger: logger}
}

// Allow records a hit for key and reports whether it is within the limit. When the
// limit is exceeded the second value is the time until the window resets. A failing
// store lets the request through.
func (rl *FixedWindowRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if !rl.cfg.Enabled || rl.cfg.RequestsPerTimeFrame <= 0 {
		return true, 0
	}

	count, ttl, err := rl.store.Incr(ctx, keyPrefix+key, rl.cfg.TimeFrame)
	if err != nil {
		rl.logger.Warnf("Rate limiter store failed, allowing request: %v", err)
		return true, 0
	}

	if count > int64(rl.cfg.RequestsPerTimeFrame) {
		return false, ttl
	}
	return true, 0
}
