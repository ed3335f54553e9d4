package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ZaguanLabs/gosocial"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// newMetrics uses its own registry so several servers can coexist.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gosocial",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gosocial",
			Name:      "generations_total",
			Help:      "Generation requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gosocial",
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating content.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.generations,
		m.duration,
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// observeGeneration records one backend call. Outcomes are "model",
// "fallback" or "error".
func (m *metrics) observeGeneration(res *gosocial.GenerationResult, err error, d time.Duration) {
	m.duration.Observe(d.Seconds())

	outcome := "error"
	if err == nil {
		outcome = "fallback"
		if res != nil && res.AIPowered != nil && *res.AIPowered {
			outcome = "model"
		}
	}
	m.generations.WithLabelValues(outcome).Inc()
}
