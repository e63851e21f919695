// Package cache provides an in-memory TTL response cache for the API.
package cache

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veridex/projectmeter/internal/monitoring"
)

// Item is a cached response with expiration.
type Item struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if the cache item has expired.
func (i *Item) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// Cache provides thread-safe caching with TTL.
type Cache struct {
	mu        sync.RWMutex
	items     map[string]*Item
	ttl       time.Duration
	cacheable map[string]bool
}

// NewCache creates a cache with the given TTL. Only requests to the listed
// paths are cached by the middleware.
func NewCache(ttl time.Duration, cacheablePaths ...string) *Cache {
	cache := &Cache{
		items:     make(map[string]*Item),
		ttl:       ttl,
		cacheable: make(map[string]bool, len(cacheablePaths)),
	}
	for _, path := range cacheablePaths {
		cache.cacheable[path] = true
	}

	go cache.cleanup()

	return cache
}

// cleanup removes expired items periodically.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for key, item := range c.items {
			if item.IsExpired() {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// generateKey creates a consistent key from method, path and request body.
func generateKey(method, path string, body []byte) string {
	hash := md5.Sum(append([]byte(method+" "+path+"\n"), body...))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves an item from the cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.IsExpired() {
		if exists && item.IsExpired() {
			go func() {
				c.mu.Lock()
				delete(c.items, key)
				c.mu.Unlock()
			}()
		}
		return nil, false
	}

	return item.Data, true
}

// Set stores an item in the cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &Item{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*Item)
}

// Size returns the number of items in the cache.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stats returns cache statistics.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	totalItems := len(c.items)
	expiredItems := 0

	for _, item := range c.items {
		if item.IsExpired() {
			expiredItems++
		}
	}

	return map[string]interface{}{
		"total_items":   totalItems,
		"expired_items": expiredItems,
		"active_items":  totalItems - expiredItems,
		"ttl_seconds":   c.ttl.Seconds(),
	}
}

// Middleware caches successful responses for the configured paths. The key
// covers method, path and body, so identical score requests share an entry
// while different algorithms or weights do not.
func (c *Cache) Middleware(metrics *monitoring.Metrics, logger *monitoring.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.cacheable[ctx.Request.URL.Path] {
			ctx.Next()
			return
		}

		var body []byte
		if ctx.Request.Body != nil {
			var err error
			body, err = io.ReadAll(ctx.Request.Body)
			if err != nil {
				ctx.Next()
				return
			}
			ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		cacheKey := generateKey(ctx.Request.Method, ctx.Request.URL.Path, body)

		if cachedData, found := c.Get(cacheKey); found {
			metrics.IncrementCacheHit()
			logger.CacheLogger("get", cacheKey, true, c.Size())
			ctx.Data(http.StatusOK, "application/json", cachedData)
			ctx.Abort()
			return
		}

		metrics.IncrementCacheMiss()
		logger.CacheLogger("get", cacheKey, false, c.Size())

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper
		ctx.Next()

		// Requests that errored have a 200 status until the error handler
		// writes its response further up the chain; never cache those.
		if ctx.Writer.Status() == http.StatusOK && len(ctx.Errors) == 0 && wrapper.body.Len() > 0 {
			c.Set(cacheKey, wrapper.body.Bytes())
			logger.CacheLogger("set", cacheKey, false, c.Size())
		}
	}
}

// responseWriter wraps gin.ResponseWriter to capture the response body.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
