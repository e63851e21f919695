// Package project defines the immutable project payload consumed by the
// analysis and scoring pipeline, plus the API request shapes built on it.
package project

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Record is a caller-owned project description. Fields are never mutated by
// the pipeline; metadata values may be strings, numbers or booleans.
type Record struct {
	Name        string         `json:"name" validate:"required,max=200"`
	Description string         `json:"description" validate:"max=50000"`
	TechStack   []string       `json:"tech_stack" validate:"max=100,dive,max=100"`
	Metadata    map[string]any `json:"metadata" validate:"max=50"`
}

// Validate checks structural constraints on the record.
func (r *Record) Validate() error {
	return validate.Struct(r)
}

// StringMetadata returns the record's string metadata values ordered by key,
// so text built from them is stable across calls.
func (r *Record) StringMetadata() []string {
	if len(r.Metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		if s, ok := r.Metadata[k].(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// NumericMetadata returns the record's numeric metadata values ordered by key.
func (r *Record) NumericMetadata() []float64 {
	if len(r.Metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		switch v := r.Metadata[k].(type) {
		case float64:
			values = append(values, v)
		case float32:
			values = append(values, float64(v))
		case int:
			values = append(values, float64(v))
		case int64:
			values = append(values, float64(v))
		case bool:
			if v {
				values = append(values, 1)
			} else {
				values = append(values, 0)
			}
		}
	}
	return values
}

// CorpusText concatenates name, description and string metadata into the
// text corpus analyzed by the extractor and classifier.
func (r *Record) CorpusText() string {
	parts := make([]string, 0, 2+len(r.Metadata))
	if r.Name != "" {
		parts = append(parts, r.Name)
	}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	parts = append(parts, r.StringMetadata()...)
	return strings.Join(parts, " ")
}

// IsEmpty reports whether the record carries no analyzable signal.
func (r *Record) IsEmpty() bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.Description) == "" &&
		len(r.TechStack) == 0 &&
		len(r.Metadata) == 0
}
