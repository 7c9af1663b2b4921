// ABOUTME: Prometheus instrumentation for the HTTP server: request counts, latency and render cache effectiveness.
// ABOUTME: Metrics live on a per-server registry so several servers can coexist in one process.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2389-research/netgraph/render"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type serverMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newServerMetrics(cache *render.RenderCache, nodes, edges int) *serverMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &serverMetrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netgraph",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "netgraph",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "netgraph",
		Name:      "graph_nodes",
		Help:      "Nodes in the served graph.",
	}, func() float64 { return float64(nodes) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "netgraph",
		Name:      "graph_edges",
		Help:      "Inserted edges in the served graph.",
	}, func() float64 { return float64(edges) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "netgraph",
		Name:      "render_cache_hits_total",
		Help:      "Image renders served from cache.",
	}, func() float64 { return float64(cache.Stats().Hits) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "netgraph",
		Name:      "render_cache_misses_total",
		Help:      "Image renders that invoked graphviz.",
	}, func() float64 { return float64(cache.Stats().Misses) })

	return m
}

func (m *serverMetrics) observe(route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *serverMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// routePattern keeps label cardinality bounded by using the chi pattern, not the raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
