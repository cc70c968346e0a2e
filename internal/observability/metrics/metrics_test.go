package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalCountersRecord(t *testing.T) {
	m := newPortalMetrics(prometheus.NewRegistry(), Config{ServiceName: "swiftprep", Environment: "test"})

	m.RecordVideoView("PES-CSE-5")
	m.RecordVideoView("PES-CSE-5")
	m.RecordCommentCreated()
	m.RecordCommentDeleted()
	m.RecordReplyCreated()
	m.RecordReplyDeleted()
	m.RecordLogin("success")
	m.RecordRateLimitDenied("discussion")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.videoViews.WithLabelValues("PES-CSE-5")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.commentsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.commentsDeleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.repliesCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.repliesDeleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.loginsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rateLimitDenied.WithLabelValues("discussion")))
}

func TestNilMetricsRecordersAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordVideoView("PES-CSE-5")
	m.RecordCommentCreated()
	m.RecordLogin("failure")
	m.RecordRateLimitDenied("discussion")
}

func TestHTTPMiddlewareObservesRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newHTTPMetrics(prometheus.NewRegistry(), Config{Environment: "test"})

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
}

func TestSingletonAccessorsReturnSameInstance(t *testing.T) {
	t.Cleanup(func() {
		ResetPortalMetricsForTest()
		ResetHTTPMetricsForTest()
	})

	first := Portal()
	second := PortalWithConfig(Config{Environment: "prod"})
	assert.Same(t, first, second)

	h1 := NewHTTPMetrics(Config{})
	h2 := NewHTTPMetrics(Config{Environment: "prod"})
	assert.Same(t, h1, h2)
}
