package middleware

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

// RateLimit throttles per client IP. A redis-backed store is used when a
// client is supplied so limits hold across replicas; otherwise the in-memory
// store is fine for a single instance.
func RateLimit(log *logger.Logger, redisClient *redis.Client, rate time.Duration, limit uint) gin.HandlerFunc {
	var store ratelimit.Store
	if redisClient != nil {
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: redisClient,
			Rate:        rate,
			Limit:       limit,
		})
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  rate,
			Limit: limit,
		})
	}
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc: func(c *gin.Context) string { return c.ClientIP() },
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			if log != nil {
				log.Warn("Rate limit exceeded", "ip", c.ClientIP(), "reset_in", time.Until(info.ResetTime).String())
			}
			c.AbortWithStatusJSON(429, gin.H{
				"error": gin.H{"message": "too many requests", "code": "rate_limited"},
			})
		},
	})
}
