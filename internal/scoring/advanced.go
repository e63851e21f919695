package scoring

import (
	"fmt"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/textfeat"
)

// AdvancedAlgorithm reuses the base dimension model, then applies a signed
// adjustment pass keyed on stack diversity, risk level, size tier and
// description sentiment before recomputing the overall score.
type AdvancedAlgorithm struct{}

func (AdvancedAlgorithm) Name() string    { return AlgorithmAdvanced }
func (AdvancedAlgorithm) Version() string { return "2.0.0" }

func (a AdvancedAlgorithm) Score(_ project.Record, bundle analysis.Bundle) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = defaultResult(a.Name(), a.Version(), fmt.Sprintf("score computation failed: %v", r))
		}
	}()

	quality, innovation, feasibility, business := baseDimensions(bundle)
	adj := adjustments(bundle)

	quality = clampScore(quality + adj[DimQuality])
	innovation = clampScore(innovation + adj[DimInnovation])
	feasibility = clampScore(feasibility + adj[DimFeasibility])
	business = clampScore(business + adj[DimBusinessValue])

	details := baseTrace(a.Name(), a.Version(), bundle)
	details["advanced_adjustments"] = adj
	details["adjusted_scores"] = map[string]float64{
		DimQuality:       quality,
		DimInnovation:    innovation,
		DimFeasibility:   feasibility,
		DimBusinessValue: business,
	}

	return Result{
		QualityScore:       quality,
		InnovationScore:    innovation,
		FeasibilityScore:   feasibility,
		BusinessValueScore: business,
		OverallScore:       overallScore(quality, innovation, feasibility, business, DefaultWeights()),
		Details:            details,
		AlgorithmVersion:   a.Version(),
	}
}

// adjustments holds only the dimensions a rule actually touched, so the
// trace shows what fired.
func adjustments(bundle analysis.Bundle) map[string]float64 {
	adj := make(map[string]float64)

	diversity := bundle.TechStack.Analysis.Diversity
	if diversity > 0.7 {
		adj[DimFeasibility] = -5
	} else if diversity < 0.3 {
		adj[DimInnovation] = -3
		adj[DimBusinessValue] = -2
	}

	switch bundle.Risk.Level {
	case "high":
		adj[DimFeasibility] -= 15
		adj[DimQuality] -= 10
	case "low":
		adj[DimFeasibility] += 5
	}

	switch bundle.Features.At(textfeat.ProjectSize) {
	case 3:
		adj[DimFeasibility] -= 10
		adj[DimBusinessValue] += 5
	case 1:
		adj[DimFeasibility] += 5
		adj[DimInnovation] -= 3
	}

	sentiment := bundle.NLP.Sentiment.Score
	if sentiment > 0.2 {
		adj[DimBusinessValue] += 3
	} else if sentiment < -0.2 {
		adj[DimQuality] -= 5
	}

	return adj
}
