package topics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	model := Train()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "technology text",
			text: "a software platform with an api and a database server",
			want: "technology",
		},
		{
			name: "business text",
			text: "business strategy to grow market revenue and customer growth",
			want: "business",
		},
		{
			name: "development text",
			text: "we build, test, debug and deploy code continuously",
			want: "development",
		},
		{
			name: "quality text",
			text: "reliable, secure and maintainable with documented behaviour",
			want: "quality",
		},
		{
			name: "innovation text",
			text: "a cutting edge breakthrough with a revolutionary approach",
			want: "innovation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := model.Transform(tt.text)
			assert.Equal(t, tt.want, dist.Dominant)

			require.Len(t, dist.Weights, len(Order))
			sum := 0.0
			for i, w := range dist.Weights {
				assert.Equal(t, Order[i], w.Topic)
				assert.GreaterOrEqual(t, w.Weight, 0.0)
				sum += w.Weight
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
			assert.GreaterOrEqual(t, dist.Entropy, 0.0)
		})
	}
}

func TestTransformSingleTopic(t *testing.T) {
	model := Train()
	dist := model.Transform("revolutionary")

	assert.Equal(t, "innovation", dist.Dominant)
	assert.InDelta(t, 0.0, dist.Entropy, 1e-9)
	for _, w := range dist.Weights {
		if w.Topic == "innovation" {
			assert.InDelta(t, 1.0, w.Weight, 1e-9)
		} else {
			assert.Zero(t, w.Weight)
		}
	}
}

func TestTransformNoSignal(t *testing.T) {
	model := Train()

	for _, text := range []string{"", "   ", "xyzzy plugh qwerty"} {
		dist := model.Transform(text)
		assert.Equal(t, "general", dist.Dominant)
		assert.InDelta(t, math.Log2(5), dist.Entropy, 1e-9)
		for _, w := range dist.Weights {
			assert.InDelta(t, 0.2, w.Weight, 1e-9)
		}
	}
}

func TestTrainDeterminism(t *testing.T) {
	first := Train()
	second := Train()

	text := "an innovative platform to build and scale a reliable product"
	a := first.Transform(text)
	b := second.Transform(text)

	assert.Equal(t, a.Dominant, b.Dominant)
	assert.InDelta(t, a.Entropy, b.Entropy, 1e-12)
	for i := range a.Weights {
		assert.InDelta(t, a.Weights[i].Weight, b.Weights[i].Weight, 1e-12)
	}
}

func TestModelInfo(t *testing.T) {
	model := Train()
	info := model.Info()

	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "Topic Model", info.ModelType)
	assert.Equal(t, Order, info.Topics)
	assert.True(t, info.Loaded)
	assert.False(t, info.TrainedAt.IsZero())
}
