package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const unmatchedRoute = "unmatched"

// Metrics counts served requests and observes their duration per route.
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	factory := promauto.With(reg)

	requests := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "minibank",
			Name:      "http_requests_total",
			Help:      "Total number of http requests",
		},
		[]string{"method", "route", "status"},
	)

	duration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "minibank",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of http requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
