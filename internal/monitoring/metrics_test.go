package monitoring

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementAnalysis(false)
	m.IncrementAnalysis(true)
	m.IncrementScoring("base")
	m.IncrementScoring("base")
	m.IncrementScoring("ml")
	m.AddBatchItems(5)
	m.IncrementRateLimitBlock()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, float64(50), stats["error_rate_percent"])
	assert.Equal(t, float64(50), stats["cache_hit_rate_percent"])
	assert.Equal(t, int64(2), stats["analyses_total"])
	assert.Equal(t, int64(1), stats["analyses_degraded"])
	assert.Equal(t, int64(3), stats["scorings_total"])
	assert.Equal(t, int64(5), stats["batch_items_total"])
	assert.Equal(t, int64(1), stats["rate_limit_blocks"])

	byAlgorithm := stats["scorings_by_algorithm"].(map[string]int64)
	assert.Equal(t, int64(2), byAlgorithm["base"])
	assert.Equal(t, int64(1), byAlgorithm["ml"])
}

func TestMetricsPercentiles(t *testing.T) {
	m := NewMetrics()

	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(95))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	p50 := m.GetPercentileResponseTime(50)
	p99 := m.GetPercentileResponseTime(99)
	assert.True(t, p50 < p99)
	assert.Equal(t, 100*time.Millisecond, m.GetPercentileResponseTime(100))
}

func TestMetricsStatusDistribution(t *testing.T) {
	m := NewMetrics()

	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(429)

	dist := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), dist[200])
	assert.Equal(t, int64(1), dist[429])
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.IncrementRequest()
	m.IncrementScoring("advanced")
	m.RecordResponseTime(time.Millisecond)
	m.RecordRequestByStatus(500)

	m.Reset()

	stats := m.GetStats()
	assert.Equal(t, int64(0), stats["total_requests"])
	assert.Equal(t, int64(0), stats["scorings_total"])
	assert.Empty(t, m.GetStatusCodeDistribution())
	assert.Empty(t, m.GetScoringsByAlgorithm())
}

func newQuietLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMetrics()
	r := gin.New()
	r.Use(Middleware(m, newQuietLogger()))
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/bad", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
	})

	for _, path := range []string{"/ok", "/ok", "/bad"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
	}

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])

	dist := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), dist[200])
	assert.Equal(t, int64(1), dist[400])
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})

	t.Run("generates id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("propagates caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set("X-Request-ID", "trace-42")
		r.ServeHTTP(w, req)

		assert.Equal(t, "trace-42", w.Header().Get("X-Request-ID"))
		assert.Contains(t, w.Body.String(), "trace-42")
	})
}
