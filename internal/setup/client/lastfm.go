// Package client assembles the HTTP client used for every Last.fm call.
package client

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/jaxron/axonet/middleware/circuitbreaker"
	axonetRedis "github.com/jaxron/axonet/middleware/redis"
	"github.com/jaxron/axonet/middleware/retry"
	"github.com/jaxron/axonet/middleware/singleflight"
	"github.com/jaxron/axonet/pkg/client"
	"github.com/jaxron/axonet/pkg/client/middleware"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/redis"
	"github.com/scrobblyx/crowned/internal/setup/config"
	"github.com/scrobblyx/crowned/internal/setup/logger"
)

// DefaultCacheTTL is used when the config does not set a cache lifetime.
// Play counts move slowly enough that short caching is invisible to users
// but absorbs the burst of identical requests a server-wide command causes.
const DefaultCacheTTL = 2 * time.Minute

// GetLastFMClient constructs an HTTP client with a middleware chain for
// reliability and performance. Responses are cached in Redis so that
// server-wide fan-outs do not hammer the API with duplicate lookups.
func GetLastFMClient(
	cfg *config.CommonConfig, redisManager *redis.Manager,
	zapLogger *zap.Logger, requestTimeout time.Duration,
) (*client.Client, error) {
	// Get Redis client for caching
	redisClient, err := redisManager.GetClient(redis.CacheDBIndex)
	if err != nil {
		return nil, err
	}

	cacheTTL := DefaultCacheTTL
	if cfg.LastFM.CacheTTL > 0 {
		cacheTTL = time.Duration(cfg.LastFM.CacheTTL) * time.Second
	}

	// Build middleware chain - order matters!
	middlewares := []middleware.Middleware{
		circuitbreaker.New(
			cfg.CircuitBreaker.MaxRequests,
			time.Duration(cfg.CircuitBreaker.Interval)*time.Millisecond,
			time.Duration(cfg.CircuitBreaker.Timeout)*time.Millisecond,
		),
		retry.New(
			cfg.Retry.MaxRetries,
			time.Duration(cfg.Retry.Delay)*time.Millisecond,
			time.Duration(cfg.Retry.MaxDelay)*time.Millisecond,
		),
		singleflight.New(),
		axonetRedis.New(redisClient, cacheTTL),
	}

	return client.NewClient(
		client.WithMarshalFunc(sonic.Marshal),
		client.WithUnmarshalFunc(sonic.Unmarshal),
		client.WithLogger(logger.New(zapLogger)),
		client.WithTimeout(requestTimeout),
		client.WithMiddleware(middlewares...),
	), nil
}
