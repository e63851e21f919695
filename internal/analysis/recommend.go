package analysis

import (
	"fmt"

	"github.com/veridex/projectmeter/internal/classify"
	"github.com/veridex/projectmeter/internal/techstack"
	"github.com/veridex/projectmeter/internal/textfeat"
)

var categoryAdvice = map[string][]string{
	"web_development": {
		"Consider a modern frontend framework such as React or Vue",
		"Implement responsive design for mobile devices",
	},
	"machine_learning": {
		"Consider PyTorch or TensorFlow for model development",
		"Add model evaluation and monitoring",
	},
}

var generalAdvice = []string{
	"Set up a continuous integration and deployment process",
	"Add performance monitoring and structured logging",
	"Schedule regular code review and refactoring passes",
	"Consider containerized deployment for portability",
}

// recommendations merges category-specific guidance, outdated-tech upgrade
// advice, feature-driven advice and the stack analyzer's own suggestions,
// deduplicated in that order, padded to at least three and capped at ten.
func recommendations(features textfeat.FeatureBundle, tech techstack.Detection, category classify.Prediction, risk RiskAssessment) []string {
	var recs []string
	seen := make(map[string]bool)
	add := func(items ...string) {
		for _, item := range items {
			if !seen[item] {
				seen[item] = true
				recs = append(recs, item)
			}
		}
	}

	add(categoryAdvice[category.Name]...)

	for _, name := range risk.OutdatedTech {
		add(fmt.Sprintf("Consider upgrading or replacing %s", name))
	}

	if features.At(textfeat.QualityDocumentation) < 0.5 {
		add("Strengthen documentation, especially API references and deployment guides")
	}
	if features.At(textfeat.QualityTesting) < 0.3 {
		add("Increase test coverage with unit and integration tests")
	}

	add(tech.Recommendations...)

	for _, item := range generalAdvice {
		if len(recs) >= 3 {
			break
		}
		add(item)
	}
	if len(recs) > 10 {
		recs = recs[:10]
	}
	return recs
}
