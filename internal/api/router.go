package api

import (
	"time"

	"billing_system/internal/auth"
	"billing_system/internal/billing"
	"billing_system/internal/middleware"
	"billing_system/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Store       store.Store
	Credentials *auth.Credentials
	Sessions    *auth.Sessions
	Customers   *billing.Service
	Redis       *redis.Client       // optional; enables the sign-in rate limit and Redis health check
	Metrics     *middleware.Metrics // optional
	AuthSecret  string
	BaseURL     string
	Currency    string
	SignInLimit int
	CORSOrigins []string
	Secure      bool // mark cookies Secure
}

// NewRouter assembles middleware and routes.
func NewRouter(d Deps) *gin.Engine {
	InitValidation()

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.AccessLog(), gin.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET(middleware.MetricsPath, gin.WrapH(d.Metrics.Handler()))
	}
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", HealthHandler(d.Store, d.Redis))

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("", RegisterHandler(d.Credentials))
	authGroup.POST("/signin",
		middleware.RateLimit(d.Redis, d.SignInLimit, time.Minute, middleware.KeyByIPAndPath()),
		SignInHandler(d.Sessions, d.BaseURL, d.Secure))
	authGroup.GET("/session", SessionHandler(d.Sessions))
	authGroup.POST("/signout", SignOutHandler(d.BaseURL, d.Secure))

	// Customer routes (protected by JWT)
	customers := r.Group("/api/customerdata")
	customers.Use(middleware.JWTAuthMiddleware(d.AuthSecret))
	customers.GET("", ListCustomersHandler(d.Customers, d.Currency))
	customers.POST("", CreateCustomerHandler(d.Customers))
	customers.PUT("", UpdateCustomerHandler(d.Customers))
	customers.DELETE("", DeleteCustomerHandler(d.Customers))

	return r
}
