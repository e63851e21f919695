package apperrors

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into structured
// JSON responses. Handlers call c.Error(err) and return; this middleware
// classifies, logs and writes the response.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := ToAppError(err)
		if requestID := c.GetString("request_id"); requestID != "" {
			appErr.RequestID = requestID
		}

		LogError(logger, appErr, c)

		if !c.Writer.Written() {
			c.JSON(appErr.HTTPStatus, appErr.Response())
		}
	}
}

// RecoveryHandler converts panics into internal errors instead of crashing
// the server.
func RecoveryHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.RecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		appErr := NewInternalError(fmt.Sprintf("panic recovered: %v", recovered), nil)
		if requestID := c.GetString("request_id"); requestID != "" {
			appErr.RequestID = requestID
		}

		logger.Error("panic recovered",
			slog.String("panic", fmt.Sprintf("%v", recovered)),
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
			slog.String("stack", string(debug.Stack())),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, appErr.Response())
	})
}

// LogError writes an AppError at a level appropriate to its category.
// Client mistakes log as warnings, server faults as errors.
func LogError(logger *slog.Logger, appErr *AppError, c *gin.Context) {
	attrs := []any{
		slog.String("category", string(appErr.Category)),
		slog.Any("error_code", appErr.ErrBuilder.ErrCode()),
		slog.Int("http_status", appErr.HTTPStatus),
	}

	if c != nil {
		attrs = append(attrs,
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
	}

	if appErr.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", appErr.RequestID))
	}

	switch appErr.Category {
	case CategoryValidation, CategoryInputEmpty, CategoryRateLimit:
		logger.Warn(appErr.Error(), attrs...)
	default:
		logger.Error(appErr.Error(), attrs...)
	}
}
