package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taaha3244/quicktools/internal/catalog"
)

type PrometheusMetrics struct {
	executions        *prometheus.CounterVec
	executionDuration *prometheus.HistogramVec
	catalogTools      prometheus.Gauge
	aiRequests        *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		executions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicktools_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"kind", "status"},
		),
		executionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quicktools_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"kind", "status"},
		),
		catalogTools: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "quicktools_catalog_tools",
				Help: "Current number of tools in the catalog",
			},
		),
		aiRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicktools_ai_requests_total",
				Help: "Total number of language model requests",
			},
			[]string{"provider", "status"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicktools_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quicktools_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (p *PrometheusMetrics) ObserveExecution(kind catalog.Kind, status string, duration time.Duration) {
	p.executions.WithLabelValues(string(kind), status).Inc()
	p.executionDuration.WithLabelValues(string(kind), status).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) SetCatalogTools(count int) {
	p.catalogTools.Set(float64(count))
}

func (p *PrometheusMetrics) ObserveAIRequest(provider, status string) {
	p.aiRequests.WithLabelValues(provider, status).Inc()
}

func (p *PrometheusMetrics) ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the metrics gathered by gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
