package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/classify"
	"github.com/veridex/projectmeter/internal/nlp"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/textfeat"
)

func TestSimulatePrediction(t *testing.T) {
	tests := []struct {
		name   string
		vector mlFeatureVector
		want   map[string]float64
	}{
		{
			name:   "no signal",
			vector: mlFeatureVector{},
			want:   map[string]float64{DimQuality: 50, DimInnovation: 50, DimFeasibility: 50, DimBusinessValue: 50},
		},
		{
			name:   "readable text small stack",
			vector: mlFeatureVector{ReadabilityScore: 70, TechCount: 3},
			want:   map[string]float64{DimQuality: 60, DimInnovation: 50, DimFeasibility: 50, DimBusinessValue: 50},
		},
		{
			// The stack-size rule assigns quality, replacing the
			// readability bonus instead of stacking with it.
			name:   "readable text large stack",
			vector: mlFeatureVector{ReadabilityScore: 70, TechCount: 6},
			want:   map[string]float64{DimQuality: 47, DimInnovation: 50, DimFeasibility: 45, DimBusinessValue: 50},
		},
		{
			name:   "hard to read",
			vector: mlFeatureVector{ReadabilityScore: 20},
			want:   map[string]float64{DimQuality: 45, DimInnovation: 50, DimFeasibility: 50, DimBusinessValue: 50},
		},
		{
			name:   "novel but risky",
			vector: mlFeatureVector{NoveltyScore: 0.6, TechCount: 6, RiskLevel: "high"},
			want:   map[string]float64{DimQuality: 47, DimInnovation: 65, DimFeasibility: 35, DimBusinessValue: 50},
		},
		{
			name:   "low risk",
			vector: mlFeatureVector{RiskLevel: "low"},
			want:   map[string]float64{DimQuality: 50, DimInnovation: 50, DimFeasibility: 55, DimBusinessValue: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simulatePrediction(tt.vector))
		})
	}
}

func TestMLScore(t *testing.T) {
	bundle := analysis.Bundle{
		Features: textfeat.FeatureBundle{
			textfeat.ReadabilityScore:  70,
			textfeat.TechCount:         6,
			textfeat.InnovationNovelty: 0.6,
		},
		Risk:     analysis.RiskAssessment{Level: "low"},
		Category: classify.Prediction{Name: "data_science", Confidence: 0.9},
		NLP:      nlp.Analysis{Sentiment: nlp.Sentiment{Score: 0.1}},
	}

	res := MLAlgorithm{}.Score(project.Record{}, bundle)

	assert.InDelta(t, 47.0, res.QualityScore, 1e-9)
	assert.InDelta(t, 65.0, res.InnovationScore, 1e-9)
	assert.InDelta(t, 50.0, res.FeasibilityScore, 1e-9)
	assert.InDelta(t, 50.0, res.BusinessValueScore, 1e-9)
	assert.InDelta(t, 53.0, res.OverallScore, 1e-9)
	assert.Equal(t, "3.0.0", res.AlgorithmVersion)

	assert.Equal(t, "simulated_ml_model", res.Details["model_used"])
	vector, ok := res.Details["ml_features"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, vector, 17)
	assert.Equal(t, "low", vector["risk_level"])
	assert.Equal(t, "data_science", vector["category"])
	assert.Equal(t, 0.9, vector["category_confidence"])
	assert.Equal(t, 6.0, vector["tech_count"])
}
