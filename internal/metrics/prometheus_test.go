package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taaha3244/quicktools/internal/catalog"
)

func TestNewPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewPrometheusMetrics(registry)
	m.ObserveExecution(catalog.KindCalculation, "success", 2*time.Millisecond)
	m.SetCatalogTools(10)
	m.ObserveAIRequest("gemini", "error")
	m.ObserveHTTPRequest("GET", "/api/tools", 200, time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	assert.Contains(t, names, "quicktools_executions_total")
	assert.Contains(t, names, "quicktools_execution_duration_seconds")
	assert.Contains(t, names, "quicktools_catalog_tools")
	assert.Contains(t, names, "quicktools_ai_requests_total")
	assert.Contains(t, names, "quicktools_http_requests_total")
	assert.Contains(t, names, "quicktools_http_request_duration_seconds")
}

func TestPrometheusMetrics_Values(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.ObserveExecution(catalog.KindImage, "success", time.Millisecond)
	m.ObserveExecution(catalog.KindImage, "success", time.Millisecond)
	m.ObserveExecution(catalog.KindImage, "error", time.Millisecond)
	m.SetCatalogTools(11)
	m.SetCatalogTools(10)
	m.ObserveAIRequest("anthropic", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.executions.WithLabelValues("image", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.executions.WithLabelValues("image", "error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.catalogTools))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequests.WithLabelValues("anthropic", "success")))
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPrometheusMetrics(registry)
	m.SetCatalogTools(7)

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "quicktools_catalog_tools 7")
}

func TestNoopMetrics(t *testing.T) {
	var r Recorder = NewNoopMetrics()
	r.ObserveExecution(catalog.KindAI, "success", time.Second)
	r.SetCatalogTools(1)
	r.ObserveAIRequest("x", "y")
	r.ObserveHTTPRequest("GET", "/", 200, 0)
}
