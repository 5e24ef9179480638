package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the planner's Prometheus metrics on a private registry.
type Registry struct {
	RequestDuration     *prometheus.HistogramVec
	Projections         *prometheus.CounterVec
	OptimizerIterations prometheus.Histogram
	PriceFetches        *prometheus.CounterVec

	reg *prometheus.Registry
}

func New() *Registry {
	r := &Registry{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planner_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"route", "method", "status"},
		),
		Projections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_projections_total",
				Help: "Projection runs by strategy and result",
			},
			[]string{"strategy", "result"},
		),
		OptimizerIterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "planner_optimizer_iterations",
				Help:    "Binary search iterations per optimal-expense solve",
				Buckets: prometheus.LinearBuckets(0, 5, 10),
			},
		),
		PriceFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_price_fetches_total",
				Help: "Live price lookups by result",
			},
			[]string{"result"},
		),
		reg: prometheus.NewRegistry(),
	}

	r.reg.MustRegister(
		r.RequestDuration,
		r.Projections,
		r.OptimizerIterations,
		r.PriceFetches,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveProjection counts one projection run.
func (r *Registry) ObserveProjection(strategy string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.Projections.WithLabelValues(strategy, result).Inc()
}

func (r *Registry) ObservePrice(result string) {
	r.PriceFetches.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry, mostly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
