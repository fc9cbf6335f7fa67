package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRun("hotel-amenity", "ok", 20*time.Millisecond)
	m.ObserveRun("hotel-amenity", "partial", 40*time.Millisecond)
	m.AddOperations("hotel-amenity", "add", "success", 3)
	m.AddOperations("hotel-amenity", "remove", "not_found", 1)
	m.AddOperations("hotel-amenity", "remove", "success", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("hotel-amenity", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("hotel-amenity", "partial")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.operations.WithLabelValues("hotel-amenity", "add", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("hotel-amenity", "remove", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.operations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun("hotel-amenity", "ok", time.Second)
		m.AddOperations("hotel-amenity", "add", "success", 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.AddOperations("activity-restriction", "add", "success", 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `travel_admin_reconcile_operations_total{kind="activity-restriction",operation="add",result="success"} 2`))
	assert.Contains(t, string(body), "go_goroutines")
}
