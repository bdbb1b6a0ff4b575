package ratelimiter

import (
	"context"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/util"
	"go.uber.org/zap"
)

// NewRateLimiter keeps its windows in redis when a healthy client is given, in
// process memory otherwise.
func NewRateLimiter(cfg config.RateLimiterConfig, rdb *Redis, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("test")
	}

	if rdb != nil && rdb.Client != nil {
		logger.Infof("Rate limiter windows stored in redis")
		return NewFixedWindowLimiter(cfg, newRedisStore(rdb.Client), logger)
	}

	logger.Infof("Rate limiter windows stored in memory")
	return NewFixedWindowLimiter(cfg, newMemoryStore(time.Now), logger)
}

// windowStore counts hits of one key inside the current window.
type windowStore interface {
	// Incr adds one hit and returns the count so far and the time left in the window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}
