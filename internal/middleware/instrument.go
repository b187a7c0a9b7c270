// Package middleware holds fiber middleware shared by the HTTP routes.
package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total number of requests counter
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpswap_requests_total",
			Help: "Total number of requests.",
		},
		[]string{"method", "endpoint", "status"},
	)

	// request latency histogram
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cpswap_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestLatency)
}

// Instrument counts requests and observes their latency per route pattern.
func Instrument() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// route pattern, not the raw path, to bound label cardinality
		endpoint := c.Route().Path
		method := c.Method()

		requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusOf(c, err))).Inc()
		requestLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())

		return err
	}
}

// statusOf resolves the status the error handler will send for err.
func statusOf(c fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
