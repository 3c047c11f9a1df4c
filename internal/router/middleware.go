package router

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware stores the public base URL of the API in the context.
// All links in responses are built from it.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "How many HTTP requests processed, partitioned by status code, HTTP method and route.",
		},
		[]string{"code", "method", "route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "request_duration_seconds",
			Help: "The HTTP request latencies in seconds.",
		},
		[]string{"code", "method", "route"},
	)
)

func collectors() []prometheus.Collector {
	return append([]prometheus.Collector{requestCount, requestDuration}, v1.Collectors()...)
}

// registerMetrics registers the HTTP and ledger metrics with the default
// registry. Metrics registered before an error are unregistered again.
func registerMetrics() error {
	var registered []prometheus.Collector
	for _, c := range collectors() {
		if err := prometheus.Register(c); err != nil {
			for _, r := range registered {
				prometheus.Unregister(r)
			}
			return fmt.Errorf("could not register metrics with Prometheus: %w", err)
		}
		registered = append(registered, c)
	}

	return nil
}

func unregisterMetrics() {
	for _, c := range collectors() {
		prometheus.Unregister(c)
	}
}

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// The route template keeps the label cardinality low.
		// Unmatched requests all share one label.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		code := strconv.Itoa(c.Writer.Status())
		requestDuration.WithLabelValues(code, c.Request.Method, route).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(code, c.Request.Method, route).Inc()
	}
}
