package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimiter builds an IP rate limiter for the given format ("5-M",
// "300-M", ...). When redisURL is set the counters live in redis so limits
// hold across replicas; otherwise an in-process store is used.
func NewRateLimiter(redisURL, format string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		slog.Error("Invalid rate limit format, using 100 per minute", slog.String("format", format), slog.String("error", err.Error()))
		rate = limiter.Rate{Period: time.Minute, Limit: 100}
	}
	return limiter.New(newLimiterStore(redisURL), rate)
}

func newLimiterStore(redisURL string) limiter.Store {
	if redisURL == "" {
		return memory.NewStore()
	}
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("Invalid REDIS_URL, using in-memory rate limit store", slog.String("error", err.Error()))
		return memory.NewStore()
	}
	store, err := limiterredis.NewStoreWithOptions(goredis.NewClient(opts), limiter.StoreOptions{
		Prefix: "gba:ratelimit",
	})
	if err != nil {
		slog.Warn("Failed to initialize redis rate limit store, using in-memory", slog.String("error", err.Error()))
		return memory.NewStore()
	}
	return store
}

// RateLimit limits requests per client IP using the given limiter.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context())

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Error("Rate limit check failed", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if lctx.Reached {
			logger.Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
