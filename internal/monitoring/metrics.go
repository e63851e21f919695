package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds in-process counters for the scoring service.
type Metrics struct {
	RequestCount        int64
	ErrorCount          int64
	CacheHits           int64
	CacheMisses         int64
	AnalysisCount       int64
	DegradedAnalyses    int64
	ScoringCount        int64
	BatchItemCount      int64
	RateLimitBlocks     int64
	AverageResponseTime int64 // in nanoseconds
	StartTime           time.Time

	// Response time window for percentiles
	ResponseTimes      []time.Duration
	ResponseTimesMutex sync.RWMutex

	// Status code tracking
	RequestCountByStatus map[int]int64
	StatusMutex          sync.RWMutex

	// Per-algorithm scoring counts
	ScoringsByAlgorithm map[string]int64
	ScoringMutex        sync.RWMutex
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		ResponseTimes:        make([]time.Duration, 0, 1000),
		RequestCountByStatus: make(map[int]int64),
		ScoringsByAlgorithm:  make(map[string]int64),
	}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count.
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count.
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// IncrementAnalysis records a completed analysis run. Degraded runs are
// counted separately so partial pipeline failures stay visible.
func (m *Metrics) IncrementAnalysis(degraded bool) {
	atomic.AddInt64(&m.AnalysisCount, 1)
	if degraded {
		atomic.AddInt64(&m.DegradedAnalyses, 1)
	}
}

// IncrementScoring records a completed scoring run for an algorithm.
func (m *Metrics) IncrementScoring(algorithm string) {
	atomic.AddInt64(&m.ScoringCount, 1)

	m.ScoringMutex.Lock()
	m.ScoringsByAlgorithm[algorithm]++
	m.ScoringMutex.Unlock()
}

// AddBatchItems records how many records a batch request carried.
func (m *Metrics) AddBatchItems(n int) {
	atomic.AddInt64(&m.BatchItemCount, int64(n))
}

// IncrementRateLimitBlock increments the rejected-request count.
func (m *Metrics) IncrementRateLimitBlock() {
	atomic.AddInt64(&m.RateLimitBlocks, 1)
}

// RecordResponseTime records response time for averaging and percentiles.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	current := atomic.LoadInt64(&m.AverageResponseTime)
	newAverage := (current + duration.Nanoseconds()) / 2
	atomic.StoreInt64(&m.AverageResponseTime, newAverage)

	// Keep the last 1000 samples
	m.ResponseTimesMutex.Lock()
	m.ResponseTimes = append(m.ResponseTimes, duration)
	if len(m.ResponseTimes) > 1000 {
		m.ResponseTimes = m.ResponseTimes[1:]
	}
	m.ResponseTimesMutex.Unlock()
}

// RecordRequestByStatus records request count by HTTP status code.
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.StatusMutex.Lock()
	defer m.StatusMutex.Unlock()
	m.RequestCountByStatus[statusCode]++
}

// GetPercentileResponseTime calculates percentile response time.
func (m *Metrics) GetPercentileResponseTime(percentile float64) time.Duration {
	m.ResponseTimesMutex.RLock()
	defer m.ResponseTimesMutex.RUnlock()

	if len(m.ResponseTimes) == 0 {
		return 0
	}

	times := make([]time.Duration, len(m.ResponseTimes))
	copy(times, m.ResponseTimes)

	sort.Slice(times, func(i, j int) bool {
		return times[i] < times[j]
	})

	index := int(float64(len(times)-1) * percentile / 100.0)
	if index >= len(times) {
		index = len(times) - 1
	}

	return times[index]
}

// GetStatusCodeDistribution returns request count by status code.
func (m *Metrics) GetStatusCodeDistribution() map[int]int64 {
	m.StatusMutex.RLock()
	defer m.StatusMutex.RUnlock()

	distribution := make(map[int]int64)
	for code, count := range m.RequestCountByStatus {
		distribution[code] = count
	}
	return distribution
}

// GetScoringsByAlgorithm returns scoring counts per algorithm.
func (m *Metrics) GetScoringsByAlgorithm() map[string]int64 {
	m.ScoringMutex.RLock()
	defer m.ScoringMutex.RUnlock()

	counts := make(map[string]int64, len(m.ScoringsByAlgorithm))
	for algorithm, count := range m.ScoringsByAlgorithm {
		counts[algorithm] = count
	}
	return counts
}

// GetStats returns current metrics statistics.
func (m *Metrics) GetStats() map[string]interface{} {
	requests := atomic.LoadInt64(&m.RequestCount)
	errors := atomic.LoadInt64(&m.ErrorCount)
	cacheHits := atomic.LoadInt64(&m.CacheHits)
	cacheMisses := atomic.LoadInt64(&m.CacheMisses)
	analyses := atomic.LoadInt64(&m.AnalysisCount)
	degraded := atomic.LoadInt64(&m.DegradedAnalyses)
	scorings := atomic.LoadInt64(&m.ScoringCount)
	batchItems := atomic.LoadInt64(&m.BatchItemCount)
	rateLimitBlocks := atomic.LoadInt64(&m.RateLimitBlocks)
	avgResponseTime := atomic.LoadInt64(&m.AverageResponseTime)

	errorRate := float64(0)
	if requests > 0 {
		errorRate = float64(errors) / float64(requests) * 100
	}

	cacheHitRate := float64(0)
	totalCacheRequests := cacheHits + cacheMisses
	if totalCacheRequests > 0 {
		cacheHitRate = float64(cacheHits) / float64(totalCacheRequests) * 100
	}

	uptime := time.Since(m.StartTime)

	return map[string]interface{}{
		"uptime_seconds":         uptime.Seconds(),
		"total_requests":         requests,
		"error_count":            errors,
		"error_rate_percent":     errorRate,
		"cache_hits":             cacheHits,
		"cache_misses":           cacheMisses,
		"cache_hit_rate_percent": cacheHitRate,
		"analyses_total":         analyses,
		"analyses_degraded":      degraded,
		"scorings_total":         scorings,
		"scorings_by_algorithm":  m.GetScoringsByAlgorithm(),
		"batch_items_total":      batchItems,
		"rate_limit_blocks":      rateLimitBlocks,
		"avg_response_time_ms":   float64(avgResponseTime) / 1000000,
		"start_time":             m.StartTime.Format(time.RFC3339),

		"p50_response_time_ms":     float64(m.GetPercentileResponseTime(50)) / 1000000,
		"p95_response_time_ms":     float64(m.GetPercentileResponseTime(95)) / 1000000,
		"p99_response_time_ms":     float64(m.GetPercentileResponseTime(99)) / 1000000,
		"status_code_distribution": m.GetStatusCodeDistribution(),
	}
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.RequestCount, 0)
	atomic.StoreInt64(&m.ErrorCount, 0)
	atomic.StoreInt64(&m.CacheHits, 0)
	atomic.StoreInt64(&m.CacheMisses, 0)
	atomic.StoreInt64(&m.AnalysisCount, 0)
	atomic.StoreInt64(&m.DegradedAnalyses, 0)
	atomic.StoreInt64(&m.ScoringCount, 0)
	atomic.StoreInt64(&m.BatchItemCount, 0)
	atomic.StoreInt64(&m.RateLimitBlocks, 0)
	atomic.StoreInt64(&m.AverageResponseTime, 0)

	m.ResponseTimesMutex.Lock()
	m.ResponseTimes = m.ResponseTimes[:0]
	m.ResponseTimesMutex.Unlock()

	m.StatusMutex.Lock()
	m.RequestCountByStatus = make(map[int]int64)
	m.StatusMutex.Unlock()

	m.ScoringMutex.Lock()
	m.ScoringsByAlgorithm = make(map[string]int64)
	m.ScoringMutex.Unlock()

	m.StartTime = time.Now()
}
