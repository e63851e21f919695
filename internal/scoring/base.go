// Package scoring turns an analysis bundle into dimension scores on a
// 0-100 scale. Three algorithms share the Algorithm interface: the additive
// base model, an adjustment pass on top of it, and a simulated ML model.
package scoring

import (
	"fmt"
	"sort"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/textfeat"
)

var innovationCategories = map[string]bool{
	"machine_learning": true,
	"iot":              true,
	"blockchain":       true,
	"game_development": true,
}

var businessCategories = map[string]bool{
	"web_development":      true,
	"mobile_app":           true,
	"data_science":         true,
	"cloud_infrastructure": true,
}

// baseDimensions computes the four dimension scores of the base model.
// Every dimension starts at 50, accumulates its documented feature
// contributions and is clamped to [0,100] independently.
func baseDimensions(bundle analysis.Bundle) (quality, innovation, feasibility, business float64) {
	f := bundle.Features
	maturity := bundle.TechStack.Analysis.Maturity

	quality = 50
	quality += f.At(textfeat.QualityCode) * 20
	quality += f.At(textfeat.QualityArchitecture) * 15
	quality += f.At(textfeat.QualityDocumentation) * 10
	quality += f.At(textfeat.QualityTesting) * 10
	quality += f.At(textfeat.QualitySecurity) * 5
	quality += (maturity - 0.5) * 20

	innovation = 50
	innovation += f.At(textfeat.InnovationNovelty) * 25
	innovation += f.At(textfeat.InnovationComplexity) * 20
	innovation += f.At(textfeat.InnovationAutomation) * 15
	if innovationCategories[bundle.Category.Name] {
		innovation += 10
	}
	if len(bundle.Risk.OutdatedTech) == 0 {
		innovation += 5
	}

	feasibility = 50
	feasibility -= (f.At(textfeat.OverallComplexity) - 0.5) * 30
	feasibility += (maturity - 0.5) * 25
	switch f.At(textfeat.ProjectSize) {
	case 3:
		feasibility -= 15
	case 2:
		feasibility -= 5
	}
	switch bundle.Risk.Level {
	case "high":
		feasibility -= 20
	case "medium":
		feasibility -= 10
	case "low":
		feasibility += 5
	}
	feasibility += f.At(textfeat.MaintainabilityScore) * 15

	business = 50
	business += f.At(textfeat.BusinessMarket) * 25
	business += f.At(textfeat.BusinessUser) * 20
	business += f.At(textfeat.BusinessScale) * 15
	if businessCategories[bundle.Category.Name] {
		business += 10
	}
	business += f.At(textfeat.InnovationPotential) * 10
	business += bundle.NLP.Sentiment.Score * 10

	return clampScore(quality), clampScore(innovation), clampScore(feasibility), clampScore(business)
}

func featureKeys(features textfeat.FeatureBundle) []string {
	keys := make([]string, 0, len(features))
	for key := range features {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func baseTrace(name, version string, bundle analysis.Bundle) map[string]any {
	return map[string]any{
		"algorithm":     name,
		"version":       version,
		"features_used": featureKeys(bundle.Features),
		"category":      bundle.Category,
		"timestamp":     traceTimestamp(),
	}
}

// BaseAlgorithm is the additive first-generation scoring model.
type BaseAlgorithm struct{}

func (BaseAlgorithm) Name() string    { return AlgorithmBase }
func (BaseAlgorithm) Version() string { return "1.0.0" }

func (a BaseAlgorithm) Score(_ project.Record, bundle analysis.Bundle) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = defaultResult(a.Name(), a.Version(), fmt.Sprintf("score computation failed: %v", r))
		}
	}()

	quality, innovation, feasibility, business := baseDimensions(bundle)
	return Result{
		QualityScore:       quality,
		InnovationScore:    innovation,
		FeasibilityScore:   feasibility,
		BusinessValueScore: business,
		OverallScore:       overallScore(quality, innovation, feasibility, business, DefaultWeights()),
		Details:            baseTrace(a.Name(), a.Version(), bundle),
		AlgorithmVersion:   a.Version(),
	}
}
