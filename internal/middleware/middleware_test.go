package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billing_system/internal/domain"
	"billing_system/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.MustGet(CtxUserID),
			"email": c.GetString(CtxUserEmail),
		})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := protectedRouter()
	user := domain.User{ID: 5, Email: "ada@example.com", Name: "Ada"}

	valid, _, err := utils.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, _, err := utils.GenerateJWT(user, "other", time.Hour)
	require.NoError(t, err)

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"email":"ada@example.com"}`, w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: valid})
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	for name, token := range map[string]string{"expired": expired, "foreign": foreign, "garbage": "abc"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := serve(r, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"message":"Invalid or expired token"}`, w.Body.String())
		})
	}

	t.Run("missing", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Authentication required"}`, w.Body.String())
	})
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.POST("/signin", RateLimit(rdb, 2, time.Minute, KeyByIPAndPath()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/signin", nil))
		assert.Equal(t, want, w.Code, "request %d", i+1)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/signin", nil))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	mr.FastForward(time.Minute + time.Second)
	w = serve(r, httptest.NewRequest(http.MethodPost, "/signin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/signin", RateLimit(nil, 1, time.Minute, KeyByIPAndPath()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/signin", nil)).Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	assert.Equal(t, incoming, serve(r, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	assert.NotEqual(t, "<script>", serve(r, req).Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(MetricsPath, gin.WrapH(m.Handler()))

	serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ping", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	w := serve(r, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "billing_http_requests_total")
}

func TestAccessLogPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLog())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	assert.Equal(t, http.StatusTeapot, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
