package middleware

import (
	"strconv"
	"strings"
	"time"

	"stayflow/internal/metrics"

	"github.com/labstack/echo/v4"
)

// PrometheusMetrics records request counts and latency per route. The
// scrape and debug endpoints themselves are not instrumented.
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		route := c.Path()
		if route == "/metrics" || strings.HasPrefix(route, "/debug/") {
			return next(c)
		}

		start := time.Now()
		err := next(c)

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			route,
			strconv.Itoa(c.Response().Status),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			route,
		).Observe(time.Since(start).Seconds())

		return err
	}
}
