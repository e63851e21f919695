package scoring

import (
	"time"
)

// Result carries the four dimension scores, the weighted overall score and
// the detail trace explaining how they were produced. Every score is in
// [0,100] for every run; degraded runs fill in documented defaults instead
// of failing.
type Result struct {
	QualityScore       float64        `json:"quality_score"`
	InnovationScore    float64        `json:"innovation_score"`
	FeasibilityScore   float64        `json:"feasibility_score"`
	BusinessValueScore float64        `json:"business_value_score"`
	OverallScore       float64        `json:"overall_score"`
	Details            map[string]any `json:"scoring_details"`
	AlgorithmVersion   string         `json:"algorithm_version"`
}

func traceTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// defaultResult is the all-50 fallback an algorithm returns when its own
// computation fails. The error marker keeps the degradation visible in the
// trace.
func defaultResult(name, version, marker string) Result {
	return Result{
		QualityScore:       50,
		InnovationScore:    50,
		FeasibilityScore:   50,
		BusinessValueScore: 50,
		OverallScore:       50,
		Details: map[string]any{
			"algorithm": name,
			"version":   version,
			"error":     marker,
			"timestamp": traceTimestamp(),
		},
		AlgorithmVersion: version,
	}
}

// errorFallbackResult is the engine-level fallback when a scoring run fails
// outside any single algorithm.
func errorFallbackResult(marker string) Result {
	res := defaultResult("error_fallback", "0.0.0", marker)
	return res
}

// batchErrorResult is the zeroed placeholder appended for an item that could
// not be scored during a batch run.
func batchErrorResult(algorithmID, marker string) Result {
	return Result{
		Details: map[string]any{
			"algorithm": algorithmID,
			"error":     marker,
			"timestamp": traceTimestamp(),
		},
		AlgorithmVersion: "0.0.0",
	}
}
