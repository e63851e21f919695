package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"default weights", DefaultWeights(), false},
		{"custom split", Weights{DimQuality: 0.4, DimInnovation: 0.3, DimFeasibility: 0.2, DimBusinessValue: 0.1}, false},
		{"single dimension", Weights{DimQuality: 1.0}, false},
		{"within tolerance", Weights{DimQuality: 0.25, DimInnovation: 0.25, DimFeasibility: 0.25, DimBusinessValue: 0.255}, false},
		{"sum too high", Weights{DimQuality: 0.5, DimInnovation: 0.5, DimFeasibility: 0.5}, true},
		{"sum too low", Weights{DimQuality: 0.2, DimInnovation: 0.2}, true},
		{"empty map", Weights{}, true},
		{"negative weight", Weights{DimQuality: -0.5, DimInnovation: 1.5}, true},
		{"unknown dimension", Weights{DimQuality: 0.5, "velocity": 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidWeights)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	require.NoError(t, w.Validate())
	for _, dim := range Dimensions() {
		assert.Equal(t, 0.25, w[dim])
	}
}

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		want    float64
	}{
		{"equal weights", DefaultWeights(), 50},
		{"quality only", Weights{DimQuality: 1}, 80},
		{"quality and business", Weights{DimQuality: 0.5, DimBusinessValue: 0.5}, 50},
		{"missing dimensions contribute nothing", Weights{DimInnovation: 0.6, DimFeasibility: 0.4}, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overallScore(80, 60, 40, 20, tt.weights)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOverallScoreRounding(t *testing.T) {
	got := overallScore(40, 55, 52.5, 50, DefaultWeights())
	assert.InDelta(t, 49.38, got, 1e-9)
}
