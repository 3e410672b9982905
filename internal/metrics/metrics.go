package metrics

import (
	"time"

	"github.com/taaha3244/quicktools/internal/catalog"
)

// Recorder is what the dispatcher, generator, catalog and HTTP layer report
// to.
type Recorder interface {
	ObserveExecution(kind catalog.Kind, status string, duration time.Duration)
	SetCatalogTools(count int)
	ObserveAIRequest(provider, status string)
	ObserveHTTPRequest(method, route string, code int, duration time.Duration)
}

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveExecution(_ catalog.Kind, _ string, _ time.Duration) {}

func (n *NoopMetrics) SetCatalogTools(_ int) {}

func (n *NoopMetrics) ObserveAIRequest(_, _ string) {}

func (n *NoopMetrics) ObserveHTTPRequest(_, _ string, _ int, _ time.Duration) {}

var (
	_ Recorder = (*NoopMetrics)(nil)
	_ Recorder = (*PrometheusMetrics)(nil)
)
