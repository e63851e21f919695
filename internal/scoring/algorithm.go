package scoring

import (
	"fmt"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/project"
)

// Algorithm ids accepted by NewAlgorithm.
const (
	AlgorithmBase     = "base"
	AlgorithmAdvanced = "advanced"
	AlgorithmML       = "ml"
)

// Algorithm scores one analyzed project. Implementations never return an
// error and never panic past Score; a failed computation degrades to the
// all-50 default result with an error marker in the trace.
type Algorithm interface {
	Name() string
	Version() string
	Score(rec project.Record, bundle analysis.Bundle) Result
}

// NewAlgorithm returns the implementation for the given id. An empty id
// selects base. Unknown ids also fall back to base; the returned note
// records the substitution so the engine can surface it in the trace.
func NewAlgorithm(id string) (Algorithm, string) {
	switch id {
	case AlgorithmBase, "":
		return BaseAlgorithm{}, ""
	case AlgorithmAdvanced:
		return AdvancedAlgorithm{}, ""
	case AlgorithmML:
		return MLAlgorithm{}, ""
	default:
		return BaseAlgorithm{}, fmt.Sprintf("unknown algorithm %q, falling back to %s", id, AlgorithmBase)
	}
}
