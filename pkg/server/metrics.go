package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's prometheus collectors. Each server owns a
// private registry so multiple instances (in tests especially) never
// fight over collector registration.
type metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circlepack_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		layoutDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "circlepack_layout_duration_seconds",
				Help: "Duration of layout computations",
			},
			[]string{"engine"},
		),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "circlepack_cache_hits_total",
			Help: "Layout cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "circlepack_cache_misses_total",
			Help: "Layout cache misses",
		}),
	}
}
