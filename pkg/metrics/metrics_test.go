package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityWritten(t *testing.T) {
	m := New()
	m.EntityWritten("card", "create")
	m.EntityWritten("card", "create")
	m.EntityWritten("set", "delete")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.entityWrites.WithLabelValues("card", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.entityWrites.WithLabelValues("set", "delete")))
}

func TestReportComputed(t *testing.T) {
	m := New()
	m.ReportComputed(10 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportsComputed))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.EntityWritten("set", "create")
		m.ReportComputed(time.Second)
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/sets", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "setforge_http_request_duration_seconds"))
	assert.True(t, strings.Contains(body, `route="/api/sets"`))
}
