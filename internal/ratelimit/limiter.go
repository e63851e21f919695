// Package ratelimit provides per-IP request throttling backed by token
// buckets from golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/veridex/projectmeter/internal/monitoring"
)

// Config holds rate limiting configuration.
type Config struct {
	RequestsPerMinute int
	BurstMultiplier   int
}

// DefaultConfig returns the default rate limiting configuration.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 60,
		BurstMultiplier:   2,
	}
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks a token bucket per client IP. Stale buckets are evicted in
// the background so the map does not grow without bound.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  Config
	metrics *monitoring.Metrics
}

// NewLimiter creates a rate limiter with the given configuration.
func NewLimiter(config Config, metrics *monitoring.Metrics) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if config.BurstMultiplier <= 0 {
		config.BurstMultiplier = DefaultConfig().BurstMultiplier
	}

	l := &Limiter{
		entries: make(map[string]*entry),
		config:  config,
		metrics: metrics,
	}

	go l.evictStale()

	return l
}

// Allow checks whether a request from ip may proceed right now.
func (l *Limiter) Allow(ip string) Result {
	l.mu.Lock()
	e, ok := l.entries[ip]
	if !ok {
		rps := rate.Limit(float64(l.config.RequestsPerMinute) / 60.0)
		burst := l.config.BurstMultiplier
		if perSecond := l.config.RequestsPerMinute / 60; perSecond > 1 {
			burst = perSecond * l.config.BurstMultiplier
		}
		e = &entry{limiter: rate.NewLimiter(rps, burst)}
		l.entries[ip] = e
	}
	e.lastSeen = time.Now()
	limiter := e.limiter
	l.mu.Unlock()

	result := Result{
		Limit: l.config.RequestsPerMinute,
	}

	if limiter.Allow() {
		result.Allowed = true
		result.Remaining = int(math.Floor(limiter.Tokens()))
		if result.Remaining < 0 {
			result.Remaining = 0
		}
		return result
	}

	// Reserve then cancel to learn how long until the next token.
	reservation := limiter.Reserve()
	result.RetryAfter = reservation.Delay()
	reservation.Cancel()

	result.ResetAt = time.Now().Add(result.RetryAfter)
	return result
}

// evictStale drops buckets idle for more than 30 minutes.
func (l *Limiter) evictStale() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-30 * time.Minute)
		l.mu.Lock()
		for ip, e := range l.entries {
			if e.lastSeen.Before(cutoff) {
				delete(l.entries, ip)
			}
		}
		l.mu.Unlock()
	}
}

// GetStats returns rate limiter statistics.
func (l *Limiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	activeIPs := len(l.entries)
	l.mu.Unlock()

	return map[string]interface{}{
		"active_ips":          activeIPs,
		"requests_per_minute": l.config.RequestsPerMinute,
		"burst_multiplier":    l.config.BurstMultiplier,
	}
}
