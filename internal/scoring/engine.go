package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/project"
)

// Engine runs the full analyze-then-score pipeline for project records.
type Engine struct {
	analysis *analysis.Context
	log      *slog.Logger
}

// NewEngine wires the engine to a shared analysis context.
func NewEngine(actx *analysis.Context, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{analysis: actx, log: log}
}

// Analysis exposes the engine's analysis context for analyze-only callers.
func (e *Engine) Analysis() *analysis.Context {
	return e.analysis
}

// Score analyzes the record and scores the resulting bundle with the chosen
// algorithm. A non-nil weight map must validate; that rejection is the only
// error this method returns. Internal failures degrade to the all-50
// fallback result with an error marker in the trace.
func (e *Engine) Score(ctx context.Context, rec project.Record, algorithmID string, weights Weights, options map[string]any) (result Result, err error) {
	if weights != nil {
		if werr := weights.Validate(); werr != nil {
			return Result{}, werr
		}
	}

	runID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("scoring run failed",
				"run_id", runID,
				"algorithm", algorithmID,
				"project", rec.Name,
				"panic", fmt.Sprint(r))
			result = errorFallbackResult(fmt.Sprintf("scoring failed: %v", r))
			result.Details["run_id"] = runID
			err = nil
		}
	}()

	bundle := e.analysis.Analyze(ctx, rec)
	algorithm, note := NewAlgorithm(algorithmID)

	result = algorithm.Score(rec, bundle)
	if result.Details == nil {
		result.Details = make(map[string]any)
	}
	result.Details["run_id"] = runID
	if note != "" {
		result.Details["algorithm_note"] = note
		e.log.Warn("unknown scoring algorithm requested", "run_id", runID, "requested", algorithmID)
	}
	if weights != nil {
		result.OverallScore = overallScore(
			result.QualityScore, result.InnovationScore,
			result.FeasibilityScore, result.BusinessValueScore, weights)
		result.Details["custom_weights"] = weights
	}
	if len(options) > 0 {
		result.Details["options"] = options
	}
	if bundle.Degraded {
		result.Details["degraded_stages"] = bundle.FailedStages
	}

	e.log.Debug("scoring run complete",
		"run_id", runID,
		"algorithm", algorithm.Name(),
		"project", rec.Name,
		"overall", result.OverallScore)

	return result, nil
}

// ScoreBatch scores every record with the same algorithm and weights. A
// failed item yields a zeroed placeholder entry; the batch never aborts.
func (e *Engine) ScoreBatch(ctx context.Context, recs []project.Record, algorithmID string, weights Weights) ([]Result, error) {
	if weights != nil {
		if err := weights.Validate(); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(recs))
	for _, rec := range recs {
		res, err := e.Score(ctx, rec, algorithmID, weights, nil)
		if err != nil {
			e.log.Error("batch item failed", "project", rec.Name, "error", err)
			res = batchErrorResult(algorithmID, err.Error())
		}
		results = append(results, res)
	}
	return results, nil
}
