package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Number of HTTP requests processed, partitioned by status code, method and route.",
		},
		[]string{"code", "method", "url"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "request_duration_seconds",
			Help: "HTTP request latencies in seconds.",
		},
		[]string{"code", "method", "url"},
	)

	metrics = []prometheus.Collector{requestCount, requestDuration}
)

// RegisterPrometheusMetrics registers all metrics of the backend with
// the default registry.
func RegisterPrometheusMetrics() error {
	for _, collector := range metrics {
		if err := prometheus.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// UnregisterPrometheusMetrics unregisters all metrics of the backend.
//
// This is needed to cleanly exit.
func UnregisterPrometheusMetrics() bool {
	ok := true
	for _, collector := range metrics {
		ok = prometheus.Unregister(collector) && ok
	}

	return ok
}

// MetricsMiddleware records the request count and duration metrics.
//
// URL parameter values are replaced with the parameter name so that
// every request for the same route shares one label set.
// https://prometheus.io/docs/practices/naming/#labels
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.Request.URL.Path
		for _, param := range c.Params {
			route = strings.Replace(route, param.Value, ":"+param.Key, 1)
		}

		status := strconv.Itoa(c.Writer.Status())
		requestDuration.WithLabelValues(status, c.Request.Method, route).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(status, c.Request.Method, route).Inc()
	}
}
