package monitoring

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Logger provides structured logging for the scoring service.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger at the given level.
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("http request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AnalysisLogger logs an analysis pipeline run.
func (l *Logger) AnalysisLogger(projectName, category string, confidence float64, degraded bool, duration time.Duration) {
	l.Info("analysis completed",
		"project", projectName,
		"category", category,
		"confidence", confidence,
		"degraded", degraded,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScoringLogger logs a scoring run.
func (l *Logger) ScoringLogger(runID, algorithm string, overall float64, duration time.Duration) {
	l.Info("scoring completed",
		"run_id", runID,
		"algorithm", algorithm,
		"overall_score", overall,
		"duration_ms", duration.Milliseconds(),
	)
}

// APIErrorLogger logs API errors with caller context.
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	_, file, line, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		caller = file + ":" + strconv.Itoa(line)
	}

	l.Error("api error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"caller", caller,
	)
}

// CacheLogger logs cache operations.
func (l *Logger) CacheLogger(operation, keyHash string, hit bool, itemCount int) {
	if len(keyHash) > 8 {
		keyHash = keyHash[:8] + "..."
	}
	l.Debug("cache operation",
		"operation", operation,
		"key_hash", keyHash,
		"hit", hit,
		"cache_size", itemCount,
	)
}

// SystemLogger logs system-level events.
func (l *Logger) SystemLogger(event, details string) {
	l.Info("system event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

// SetLevel replaces the handler with one at the given level.
func (l *Logger) SetLevel(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	l.Logger = slog.New(handler)
}

var startTime = time.Now()
