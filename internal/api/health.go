package api

import (
	"context"
	"net/http"
	"time"

	"billing_system/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HealthHandler pings the store and, when configured, Redis.
func HealthHandler(st store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"store": "ok"}
		healthy := true
		if err := st.Ping(ctx); err != nil {
			logrus.WithError(err).Error("store health check failed")
			checks["store"] = "unavailable"
			healthy = false
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				logrus.WithError(err).Error("redis health check failed")
				checks["redis"] = "unavailable"
				healthy = false
			}
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
	}
}
