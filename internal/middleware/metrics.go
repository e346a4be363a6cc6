package middleware

import (
	"net/http" // HTTP handler type
	"strconv"  // Status label
	"time"     // Latency measurement

	"github.com/gin-gonic/gin"                                  // Gin web framework
	"github.com/prometheus/client_golang/prometheus"            // Collectors
	"github.com/prometheus/client_golang/prometheus/collectors" // Process and Go runtime collectors
	"github.com/prometheus/client_golang/prometheus/promhttp"   // Exposition handler
)

// MetricsPath is excluded from instrumentation
const MetricsPath = "/metrics"

// Metrics holds the HTTP collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry     // Private registry, exposed on /metrics
	inFlight prometheus.Gauge         // Requests being served
	requests *prometheus.CounterVec   // Requests by method, route and status
	duration *prometheus.HistogramVec // Latency by method and route
}

// NewMetrics registers the HTTP collectors plus process and Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "billing",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billing",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "billing",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
	}
	m.Registry.MustRegister(
		m.inFlight,
		m.requests,
		m.duration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Middleware records request count and latency labelled by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Scrapes are not counted
		if c.Request.URL.Path == MetricsPath {
			c.Next()
			return
		}
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath() // Route template, not the raw path
		if path == "" {
			path = "unmatched" // No route matched
		}
		m.requests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
