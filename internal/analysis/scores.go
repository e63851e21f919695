package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/techstack"
	"github.com/veridex/projectmeter/internal/textfeat"
)

// complexityScore grades how involved the project is, 0-100: base 50,
// plus 5 per detected technology up to 25, a size-tier bonus, and the
// combined complexity feature.
func complexityScore(features textfeat.FeatureBundle, tech techstack.Detection) float64 {
	score := 50.0
	score += minFloat(float64(len(tech.Technologies))*5, 25)

	switch features.At(textfeat.ProjectSize) {
	case 3:
		score += 15
	case 2:
		score += 10
	case 1:
		score += 5
	}

	score += features.At(textfeat.OverallComplexity) * 10
	return clamp(score)
}

// maturityScore grades delivery maturity, 0-100: stack maturity around its
// 0.5 midpoint plus documentation and testing keyword signals.
func maturityScore(features textfeat.FeatureBundle, tech techstack.Detection) float64 {
	score := 50.0
	score += (tech.Analysis.Maturity - 0.5) * 40
	score += (features.At(textfeat.QualityDocumentation) - 0.5) * 20
	score += (features.At(textfeat.QualityTesting) - 0.5) * 20
	return clamp(score)
}

func assessRisk(rec project.Record, features textfeat.FeatureBundle, tech techstack.Detection) RiskAssessment {
	factors := []string{}
	level := "low"

	var outdated []string
	for _, d := range tech.Details {
		if d.Outdated {
			outdated = append(outdated, d.Name)
		}
	}
	sort.Strings(outdated)
	if len(outdated) > 0 {
		factors = append(factors, fmt.Sprintf("Outdated technologies in use: %s", strings.Join(outdated, ", ")))
		level = "medium"
	}

	if n := len(rec.TechStack); n > 50 {
		factors = append(factors, fmt.Sprintf("Very large declared stack (%d entries)", n))
		level = "medium"
	}

	if features.At(textfeat.MaintainabilityScore) < 0.3 && features.At(textfeat.ProjectSize) >= 2 {
		factors = append(factors, "Weak maintainability signals for a stack of this size")
		level = "medium"
	}

	if features.At(textfeat.RiskScore) > 0.5 {
		factors = append(factors, "High complexity with few quality signals")
		level = "high"
	}

	return RiskAssessment{
		Level:           level,
		Factors:         factors,
		OutdatedTech:    outdated,
		DependencyCount: len(rec.TechStack),
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
