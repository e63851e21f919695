package project

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ScoreRequest asks for a single project to be scored. Algorithm may be
// empty or unrecognized; the engine falls back to the base algorithm and
// notes it in the trace.
type ScoreRequest struct {
	Project   Record             `json:"project" validate:"required"`
	Algorithm string             `json:"algorithm"`
	Weights   map[string]float64 `json:"weights"`
	Options   map[string]any     `json:"options"`
}

// Validate checks structural constraints on the request.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// BatchScoreRequest asks for several projects to be scored with shared
// settings.
type BatchScoreRequest struct {
	Projects  []Record           `json:"projects" validate:"required,min=1,max=100,dive"`
	Algorithm string             `json:"algorithm"`
	Weights   map[string]float64 `json:"weights"`
}

// Validate checks structural constraints on the request.
func (r *BatchScoreRequest) Validate() error {
	return validate.Struct(r)
}

// CompareRequest asks for a similarity comparison between two texts.
type CompareRequest struct {
	TextA string `json:"text_a" validate:"required,max=50000"`
	TextB string `json:"text_b" validate:"required,max=50000"`
}

// Validate checks structural constraints on the request.
func (r *CompareRequest) Validate() error {
	return validate.Struct(r)
}

// ScoreOptions are the per-request flags the API recognizes inside the
// free-form options map. Unknown keys pass through untouched; they still
// land in the scoring trace.
type ScoreOptions struct {
	IncludeAnalysis        bool `mapstructure:"include_analysis"`
	IncludeRecommendations bool `mapstructure:"include_recommendations"`
}

// DecodeScoreOptions extracts recognized flags from the raw options map.
// A type mismatch on a recognized key is an error; unknown keys are not.
func DecodeScoreOptions(raw map[string]any) (ScoreOptions, error) {
	var opts ScoreOptions
	if len(raw) == 0 {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &opts,
	})
	if err != nil {
		return opts, fmt.Errorf("building options decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return ScoreOptions{}, fmt.Errorf("invalid options: %w", err)
	}

	return opts, nil
}
