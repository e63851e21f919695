package cache

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/projectmeter/internal/monitoring"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("key", []byte("value"))
	data, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, []byte("value"), data)
	assert.Equal(t, 1, c.Size())

	c.Delete("key")
	_, found = c.Get("key")
	assert.False(t, found)
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key", []byte("value"))
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheClear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCacheStats(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_items"])
	assert.Equal(t, 1, stats["active_items"])
	assert.Equal(t, float64(60), stats["ttl_seconds"])
}

func TestGenerateKeyDistinguishesRequests(t *testing.T) {
	base := generateKey("POST", "/api/v1/score", []byte(`{"algorithm":"base"}`))
	other := generateKey("POST", "/api/v1/score", []byte(`{"algorithm":"ml"}`))
	path := generateKey("POST", "/api/v1/analyze", []byte(`{"algorithm":"base"}`))

	assert.NotEqual(t, base, other)
	assert.NotEqual(t, base, path)
	assert.Equal(t, base, generateKey("POST", "/api/v1/score", []byte(`{"algorithm":"base"}`)))
}

func newTestLogger() *monitoring.Logger {
	return &monitoring.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestMiddlewareCachesResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute, "/api/v1/score")
	metrics := monitoring.NewMetrics()

	var handlerCalls int64
	r := gin.New()
	r.Use(c.Middleware(metrics, newTestLogger()))
	r.POST("/api/v1/score", func(ctx *gin.Context) {
		atomic.AddInt64(&handlerCalls, 1)
		ctx.JSON(http.StatusOK, gin.H{"overall_score": 61.5})
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(`{"name":"x"}`))
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	second := send()

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int64(1), atomic.LoadInt64(&handlerCalls))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
}

func TestMiddlewareSkipsUnlistedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute, "/api/v1/score")
	metrics := monitoring.NewMetrics()

	var handlerCalls int64
	r := gin.New()
	r.Use(c.Middleware(metrics, newTestLogger()))
	r.POST("/api/v1/other", func(ctx *gin.Context) {
		atomic.AddInt64(&handlerCalls, 1)
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/other", strings.NewReader(`{}`))
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int64(2), atomic.LoadInt64(&handlerCalls))
	assert.Equal(t, 0, c.Size())
}

func TestMiddlewareDoesNotCacheErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute, "/api/v1/score")
	metrics := monitoring.NewMetrics()

	r := gin.New()
	r.Use(c.Middleware(metrics, newTestLogger()))
	r.POST("/api/v1/score", func(ctx *gin.Context) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, c.Size())
}

func TestMiddlewareDoesNotCacheDeferredErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute, "/api/v1/score")
	metrics := monitoring.NewMetrics()

	// Handlers that register an error and return leave the response unwritten
	// until an outer error middleware responds.
	r := gin.New()
	r.Use(c.Middleware(metrics, newTestLogger()))
	r.POST("/api/v1/score", func(ctx *gin.Context) {
		ctx.Error(assert.AnError)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, 0, c.Size())
}
