package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/projectmeter/internal/monitoring"
)

func TestAllowWithinBurst(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 60, BurstMultiplier: 2}, nil)

	first := l.Allow("10.0.0.1")
	second := l.Allow("10.0.0.1")

	assert.True(t, first.Allowed)
	assert.True(t, second.Allowed)
	assert.Equal(t, 60, first.Limit)
}

func TestAllowBlocksPastBurst(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 60, BurstMultiplier: 2}, nil)

	l.Allow("10.0.0.2")
	l.Allow("10.0.0.2")
	third := l.Allow("10.0.0.2")

	require.False(t, third.Allowed)
	assert.Greater(t, third.RetryAfter.Nanoseconds(), int64(0))
	assert.False(t, third.ResetAt.IsZero())
}

func TestAllowIsolatesIPs(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 60, BurstMultiplier: 1}, nil)

	blocked := l.Allow("10.0.0.3")
	require.True(t, blocked.Allowed)
	require.False(t, l.Allow("10.0.0.3").Allowed)

	other := l.Allow("10.0.0.4")
	assert.True(t, other.Allowed)
}

func TestConfigDefaultsApplied(t *testing.T) {
	l := NewLimiter(Config{}, nil)

	stats := l.GetStats()
	assert.Equal(t, DefaultConfig().RequestsPerMinute, stats["requests_per_minute"])
	assert.Equal(t, DefaultConfig().BurstMultiplier, stats["burst_multiplier"])
}

func TestMiddlewareRejectsWithHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	l := NewLimiter(Config{RequestsPerMinute: 60, BurstMultiplier: 1}, metrics)

	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.168.1.9:12345"
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "60", first.Header().Get("X-RateLimit-Limit"))

	second := send()
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "rate limit exceeded")

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats["rate_limit_blocks"])
}
