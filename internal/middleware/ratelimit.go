package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Header values
	"time"     // Window durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// incrExpireScript increments the counter and starts its window on first hit
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

// KeyByIPAndPath limits per client IP and route
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "rl:" + path + ":" + ip
	}
}

// RateLimit allows max requests per window for each key. It is a no-op
// without a Redis client and fails open when Redis errors.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Request-scoped context for Redis
		key := keyFn(c)            // Counter key for this caller

		count, err := incrExpireScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int() // Atomic increment
		if err != nil {
			// Fail open when Redis is unavailable
			logrus.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		resetSec := 0 // Seconds until the window resets
		if ttl, err := rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			resetSec = int((ttl + time.Second - 1) / time.Second)
		}
		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		// Exceeded
		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
