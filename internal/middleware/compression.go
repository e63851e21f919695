// Package middleware holds HTTP middleware that is not tied to another
// subsystem. Currently that is gzip response compression.
package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression.
type CompressionConfig struct {
	MinSize          int      // Minimum response size to compress (bytes)
	CompressionLevel int      // Gzip compression level (1-9)
	ContentTypes     []string // Content types to compress
}

// DefaultCompressionConfig returns the default compression configuration.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		CompressionLevel: 6,
		ContentTypes: []string{
			"application/json",
			"text/plain",
			"text/html",
		},
	}
}

// Compression compresses JSON responses above a size threshold. Responses
// are buffered, so it is intended for the small payloads this API serves.
type Compression struct {
	config CompressionConfig
	stats  *CompressionStats
	pool   sync.Pool
}

// NewCompression creates compression middleware with the given config.
func NewCompression(config CompressionConfig) *Compression {
	level := config.CompressionLevel
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}

	return &Compression{
		config: config,
		stats:  NewCompressionStats(),
		pool: sync.Pool{
			New: func() interface{} {
				gz, _ := gzip.NewWriterLevel(io.Discard, level)
				return gz
			},
		},
	}
}

// bufferingWriter captures the response body so the middleware can decide
// whether to compress after the handler runs.
type bufferingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferingWriter) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *bufferingWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// Middleware returns the gin handler applying compression.
func (cm *Compression) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		wrapper := &bufferingWriter{ResponseWriter: c.Writer}
		c.Writer = wrapper
		c.Next()
		c.Writer = wrapper.ResponseWriter

		body := wrapper.buf.Bytes()
		status := wrapper.Status()
		contentType := wrapper.Header().Get("Content-Type")

		compressible := status == http.StatusOK &&
			len(body) >= cm.config.MinSize &&
			cm.shouldCompress(contentType)

		if !compressible {
			cm.stats.RecordRequest(int64(len(body)), int64(len(body)), false)
			if len(body) > 0 {
				c.Writer.Write(body)
			}
			return
		}

		var compressed bytes.Buffer
		gz := cm.pool.Get().(*gzip.Writer)
		gz.Reset(&compressed)
		gz.Write(body)
		gz.Close()
		cm.pool.Put(gz)

		cm.stats.RecordRequest(int64(len(body)), int64(compressed.Len()), true)

		header := c.Writer.Header()
		header.Set("Content-Encoding", "gzip")
		header.Set("Vary", "Accept-Encoding")
		header.Del("Content-Length")
		c.Writer.Write(compressed.Bytes())
	}
}

// shouldCompress checks if the content type should be compressed.
func (cm *Compression) shouldCompress(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// GetStats returns compression statistics.
func (cm *Compression) GetStats() map[string]interface{} {
	return cm.stats.GetStats()
}

// CompressionStats tracks compression statistics.
type CompressionStats struct {
	TotalRequests      int64
	CompressedRequests int64
	TotalBytes         int64
	CompressedBytes    int64
	mutex              sync.RWMutex
}

// NewCompressionStats creates new compression statistics.
func NewCompressionStats() *CompressionStats {
	return &CompressionStats{}
}

// RecordRequest records a request's compression outcome.
func (cs *CompressionStats) RecordRequest(originalSize, compressedSize int64, compressed bool) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.TotalRequests++
	cs.TotalBytes += originalSize

	if compressed {
		cs.CompressedRequests++
		cs.CompressedBytes += compressedSize
	}
}

// GetStats returns current compression statistics.
func (cs *CompressionStats) GetStats() map[string]interface{} {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	compressionRatio := float64(0)
	if cs.TotalBytes > 0 && cs.CompressedBytes > 0 {
		compressionRatio = float64(cs.CompressedBytes) / float64(cs.TotalBytes)
	}

	return map[string]interface{}{
		"total_requests":      cs.TotalRequests,
		"compressed_requests": cs.CompressedRequests,
		"total_bytes":         cs.TotalBytes,
		"compressed_bytes":    cs.CompressedBytes,
		"compression_ratio":   compressionRatio,
	}
}
