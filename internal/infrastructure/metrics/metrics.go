package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sportsNewsMCP/internal/domain/entity"
)

const namespace = "sports_news"

// Recorder collects cache and upstream counters on its own registry.
type Recorder struct {
	registry         *prometheus.Registry
	cacheLookups     *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
	toolCalls        *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "News cache lookups by category and result (hit, miss, expired).",
		}, []string{"category", "result"}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Failed provider fetches by category.",
		}, []string{"category"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Tool-calling protocol requests by method and outcome.",
		}, []string{"method", "outcome"}),
	}

	r.registry.MustRegister(
		r.cacheLookups,
		r.upstreamFailures,
		r.toolCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) CacheHit(category entity.Category) {
	r.cacheLookups.WithLabelValues(string(category), "hit").Inc()
}

func (r *Recorder) CacheMiss(category entity.Category, expired bool) {
	result := "miss"
	if expired {
		result = "expired"
	}
	r.cacheLookups.WithLabelValues(string(category), result).Inc()
}

func (r *Recorder) UpstreamFailure(category entity.Category) {
	r.upstreamFailures.WithLabelValues(string(category)).Inc()
}

func (r *Recorder) RPCRequest(method, outcome string) {
	r.toolCalls.WithLabelValues(method, outcome).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
