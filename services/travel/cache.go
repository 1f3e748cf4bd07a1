package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roamly/models"
	"roamly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedEstimator caches successful estimates in Redis in front of
// another Estimator. Failed estimates are never cached, so a provider
// outage clears as soon as the provider recovers.
type CachedEstimator struct {
	Next   Estimator
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

// NewCachedEstimator wraps next with a Redis cache of the given TTL.
func NewCachedEstimator(next Estimator, client *redis.Client, ttl time.Duration) *CachedEstimator {
	return &CachedEstimator{
		Next:   next,
		Client: client,
		TTL:    ttl,
		Logger: utils.GetLogger(),
	}
}

func cacheKey(origin, destination string, mode models.TransportationMode) string {
	return fmt.Sprintf("travel:%s:%s|%s", mode, origin, destination)
}

func (c *CachedEstimator) Estimate(ctx context.Context, origin, destination string, mode models.TransportationMode) models.TravelEstimate {
	key := cacheKey(origin, destination, mode)

	if raw, err := c.Client.Get(ctx, key).Result(); err == nil {
		var est models.TravelEstimate
		if jsonErr := json.Unmarshal([]byte(raw), &est); jsonErr == nil {
			return est
		}
		// Unreadable entries are dropped and recomputed.
		c.Client.Del(ctx, key)
	} else if err != redis.Nil && c.Logger != nil {
		c.Logger.Warn("travel cache read failed", zap.String("key", key), zap.Error(err))
	}

	est := c.Next.Estimate(ctx, origin, destination, mode)
	if !est.Failed() {
		if b, err := json.Marshal(est); err == nil {
			if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil && c.Logger != nil {
				c.Logger.Warn("travel cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return est
}
