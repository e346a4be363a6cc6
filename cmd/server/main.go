package main

import (
	"context"   // context package is needed for Redis operations and shutdown
	"errors"    // errors package for server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"billing_system/internal/api"        // Custom package for API handlers
	"billing_system/internal/auth"       // Credential and session services
	"billing_system/internal/billing"    // Customer service
	"billing_system/internal/config"     // Custom package for configuration
	"billing_system/internal/db"         // Database connection and migrations
	"billing_system/internal/logger"     // Logger setup
	"billing_system/internal/middleware" // Custom package for middleware
	"billing_system/internal/store"      // Persistence
	"billing_system/internal/utils"      // Cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/crypto/bcrypt"   // Password hashing cost
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	logger.Setup(cfg.LogLevel, cfg.IsProd)

	// Connect to the configured store
	var st store.Store
	if cfg.DBDriver == "memory" {
		logrus.Warn("using in-memory store, data is lost on restart")
		st = store.NewMemoryStore()
	} else {
		gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("failed to migrate DB: %v", err)
		}
		st = store.NewGormStore(gdb)
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	creds := auth.NewCredentials(st, bcrypt.DefaultCost)
	r := api.NewRouter(api.Deps{
		Store:       st,
		Credentials: creds,
		Sessions:    auth.NewSessions(creds, cfg.AuthSecret, cfg.SessionTTL, cfg.SignInPath),
		Customers:   billing.NewService(st, utils.NewCache(redisClient, cfg.CacheTTL)),
		Redis:       redisClient,
		Metrics:     middleware.NewMetrics(),
		AuthSecret:  cfg.AuthSecret,
		BaseURL:     cfg.BaseURL,
		Currency:    cfg.Currency,
		SignInLimit: cfg.SignInLimit,
		CORSOrigins: cfg.AllowedOrigins(),
		Secure:      cfg.IsProd,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
		return
	}
	logrus.Info("server stopped")
}
