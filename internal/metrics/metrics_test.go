package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/link-checker/internal/metrics"
)

func TestRecordCheck(t *testing.T) {
	t.Parallel()

	m := metrics.New(nil)

	m.RecordCheck("ok", 120*time.Millisecond)
	m.RecordCheck("ok", 80*time.Millisecond)
	m.RecordCheck("broken", 0)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("broken")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.CheckDuration))
}

func TestScanAndTaskCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New(nil)

	m.RecordScanStarted("full")
	m.RecordScanFinished("completed")
	m.RecordBatch(time.Second, 7)
	m.RecordTask("linkcheck.process_queue", nil)
	m.RecordTask("linkcheck.process_queue", errors.New("boom"))

	assert.InDelta(t, 1, testutil.ToFloat64(m.ScansStarted.WithLabelValues("full")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ScansFinished.WithLabelValues("completed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BatchesProcessed), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(m.LinksPending), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TasksExecuted.WithLabelValues("linkcheck.process_queue", "error")), 0)
}

func TestMiddlewareAndHandler(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	m := metrics.New(nil)
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/links/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/links/42", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/links/:id", "404")), 0)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "link_checker_http_requests_total")
}
