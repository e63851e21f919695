package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/nlp"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/techstack"
	"github.com/veridex/projectmeter/internal/textfeat"
)

func TestAdjustments(t *testing.T) {
	tests := []struct {
		name   string
		bundle analysis.Bundle
		want   map[string]float64
	}{
		{
			name: "balanced stack triggers nothing",
			bundle: analysis.Bundle{
				TechStack: techstack.Detection{Analysis: techstack.StackAnalysis{Diversity: 0.5}},
			},
			want: map[string]float64{},
		},
		{
			name: "over diverse stack",
			bundle: analysis.Bundle{
				TechStack: techstack.Detection{Analysis: techstack.StackAnalysis{Diversity: 0.8}},
			},
			want: map[string]float64{DimFeasibility: -5},
		},
		{
			name: "uniform stack",
			bundle: analysis.Bundle{
				TechStack: techstack.Detection{Analysis: techstack.StackAnalysis{Diversity: 0.2}},
			},
			want: map[string]float64{DimInnovation: -3, DimBusinessValue: -2},
		},
		{
			name: "small project with positive outlook",
			bundle: analysis.Bundle{
				TechStack: techstack.Detection{Analysis: techstack.StackAnalysis{Diversity: 0.5}},
				Risk:      analysis.RiskAssessment{Level: "low"},
				Features:  textfeat.FeatureBundle{textfeat.ProjectSize: 1},
				NLP:       nlp.Analysis{Sentiment: nlp.Sentiment{Score: 0.3}},
			},
			want: map[string]float64{
				DimFeasibility:   10,
				DimInnovation:    -3,
				DimBusinessValue: 3,
			},
		},
		{
			name: "large risky project with negative sentiment",
			bundle: analysis.Bundle{
				TechStack: techstack.Detection{Analysis: techstack.StackAnalysis{Diversity: 0.8}},
				Risk:      analysis.RiskAssessment{Level: "high"},
				Features:  textfeat.FeatureBundle{textfeat.ProjectSize: 3},
				NLP:       nlp.Analysis{Sentiment: nlp.Sentiment{Score: -0.3}},
			},
			want: map[string]float64{
				DimFeasibility:   -30,
				DimQuality:       -15,
				DimBusinessValue: 5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adjustments(tt.bundle))
		})
	}
}

func TestAdvancedScore(t *testing.T) {
	bundle := analysis.Bundle{
		TechStack: techstack.Detection{
			Analysis: techstack.StackAnalysis{Diversity: 0.8, Maturity: 0.5},
		},
		Risk:     analysis.RiskAssessment{Level: "high"},
		Features: textfeat.FeatureBundle{textfeat.ProjectSize: 3},
		NLP:      nlp.Analysis{Sentiment: nlp.Sentiment{Score: -0.3}},
	}

	res := AdvancedAlgorithm{}.Score(project.Record{}, bundle)

	assert.InDelta(t, 35.0, res.QualityScore, 1e-9)
	assert.InDelta(t, 55.0, res.InnovationScore, 1e-9)
	assert.InDelta(t, 0.0, res.FeasibilityScore, 1e-9)
	assert.InDelta(t, 52.0, res.BusinessValueScore, 1e-9)
	assert.InDelta(t, 35.5, res.OverallScore, 1e-9)

	assert.Equal(t, "2.0.0", res.AlgorithmVersion)
	assert.Equal(t, "advanced", res.Details["algorithm"])
	assert.Equal(t, map[string]float64{
		DimFeasibility:   -30,
		DimQuality:       -15,
		DimBusinessValue: 5,
	}, res.Details["advanced_adjustments"])
	assert.Equal(t, map[string]float64{
		DimQuality:       35,
		DimInnovation:    55,
		DimFeasibility:   0,
		DimBusinessValue: 52,
	}, res.Details["adjusted_scores"])
}
