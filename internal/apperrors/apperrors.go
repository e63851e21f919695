// Package apperrors defines the error taxonomy for the scoring service:
// typed categories built on errbuilder, HTTP status mapping and the gin
// middleware that turns them into structured responses. Core packages
// return plain errors; this package classifies them at the API boundary.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Category classifies an error for handling and logging.
type Category string

const (
	CategoryValidation       Category = "validation"
	CategoryInputEmpty       Category = "input_empty"
	CategoryModelUnavailable Category = "model_unavailable"
	CategoryComputation      Category = "computation"
	CategoryRateLimit        Category = "rate_limit"
	CategoryInternal         Category = "internal"
)

// AppError wraps an errbuilder error with the category and HTTP status the
// API layer needs.
type AppError struct {
	*errbuilder.ErrBuilder
	Category   Category  `json:"category"`
	HTTPStatus int       `json:"http_status"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Category, e.ErrBuilder.Msg)
}

func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// Response is the wire shape written for a failed request.
func (e *AppError) Response() map[string]any {
	resp := map[string]any{
		"error":     e.ErrBuilder.Msg,
		"category":  e.Category,
		"timestamp": e.Timestamp.Format(time.RFC3339),
	}
	if e.RequestID != "" {
		resp["request_id"] = e.RequestID
	}
	return resp
}

// New creates an AppError from an errbuilder with category and status.
func New(builder *errbuilder.ErrBuilder, category Category, httpStatus int) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
	}
}

// NewValidationError rejects malformed caller input.
func NewValidationError(message string, details ...string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	if len(details) > 0 {
		errorMap := errbuilder.ErrorMap{}
		errorMap.Set("validation_details", errors.New(details[0]))
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	return New(builder, CategoryValidation, http.StatusBadRequest)
}

// NewInputEmptyError rejects requests whose required text is missing. Empty
// input inside the pipeline is handled locally with neutral results; this
// error exists for endpoints that need at least one non-empty field.
func NewInputEmptyError(field string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s cannot be empty", field))

	return New(builder, CategoryInputEmpty, http.StatusBadRequest)
}

// NewModelUnavailableError reports a model that failed to load or train.
func NewModelUnavailableError(model string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(fmt.Sprintf("%s model unavailable", model))

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return New(builder, CategoryModelUnavailable, http.StatusServiceUnavailable)
}

// NewComputationError reports a failed analysis or scoring computation.
// Callers normally degrade instead; this surfaces only when a result cannot
// be produced at all.
func NewComputationError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return New(builder, CategoryComputation, http.StatusInternalServerError)
}

// NewRateLimitError reports an exhausted rate limit budget.
func NewRateLimitError(retryAfter time.Duration) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("retry_after", errors.New(retryAfter.String()))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeResourceExhausted).
		WithMsg("rate limit exceeded").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return New(builder, CategoryRateLimit, http.StatusTooManyRequests)
}

// NewInternalError reports an unexpected failure.
func NewInternalError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return New(builder, CategoryInternal, http.StatusInternalServerError)
}

// ToAppError classifies an arbitrary error. AppErrors pass through; context
// cancellation maps to computation; everything else is internal.
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return New(ebErr, CategoryInternal, http.StatusInternalServerError)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewComputationError("request cancelled before completion", err)
	}

	return NewInternalError("an unexpected error occurred", err)
}
