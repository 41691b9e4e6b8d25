package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayflow_http_requests_total",
			Help: "Number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stayflow_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RefreshExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayflow_token_refresh_total",
			Help: "Number of refresh token exchanges by result",
		},
		[]string{"result"},
	)
)
