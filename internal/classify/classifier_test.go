package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/projectmeter/internal/project"
)

func TestPredictText(t *testing.T) {
	clf := NewClassifier()
	require.NoError(t, clf.TrainBuiltin())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "machine learning text",
			text: "machine learning neural network model training with tensorflow",
			want: "machine_learning",
		},
		{
			name: "web development text",
			text: "responsive website frontend built with react and javascript",
			want: "web_development",
		},
		{
			name: "cloud infrastructure text",
			text: "kubernetes docker microservices with terraform and ci/cd",
			want: "cloud_infrastructure",
		},
		{
			name: "blockchain text",
			text: "ethereum smart contract platform for defi and nft trading",
			want: "blockchain",
		},
		{
			name: "mobile text",
			text: "cross platform mobile application for ios and android with flutter",
			want: "mobile_app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := clf.PredictText(tt.text)
			assert.Equal(t, tt.want, pred.Name)
			assert.Greater(t, pred.Confidence, 0.0)
			assert.LessOrEqual(t, pred.Confidence, 1.0)
			assert.Equal(t, pred.Probabilities[pred.Name], pred.Confidence)

			sum := 0.0
			for _, p := range pred.Probabilities {
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9)

			require.NotEmpty(t, pred.TopCategories)
			assert.Equal(t, tt.want, pred.TopCategories[0].Name)
			assert.LessOrEqual(t, len(pred.TopCategories), 3)
			for i := 1; i < len(pred.TopCategories); i++ {
				assert.GreaterOrEqual(t,
					pred.TopCategories[i-1].Probability,
					pred.TopCategories[i].Probability)
			}
		})
	}
}

func TestPredictTextUnknown(t *testing.T) {
	t.Run("untrained model", func(t *testing.T) {
		clf := NewClassifier()
		pred := clf.PredictText("machine learning pipeline")
		assert.Equal(t, "unknown", pred.Name)
		assert.Zero(t, pred.Confidence)
		assert.Equal(t, map[string]float64{"unknown": 1}, pred.Probabilities)
	})

	t.Run("empty text", func(t *testing.T) {
		clf := NewClassifier()
		require.NoError(t, clf.TrainBuiltin())
		pred := clf.PredictText("   !!! ...   ")
		assert.Equal(t, "unknown", pred.Name)
		assert.Zero(t, pred.Confidence)
	})
}

func TestPredictRecord(t *testing.T) {
	clf := NewClassifier()
	require.NoError(t, clf.TrainBuiltin())

	rec := project.Record{
		Name:        "Sensor Hub",
		Description: "Home automation service collecting readings over mqtt",
		TechStack:   []string{"arduino", "raspberry pi"},
		Metadata:    map[string]any{"domain": "smart home"},
	}
	pred := clf.Predict(rec)
	assert.Equal(t, "iot", pred.Name)

	t.Run("empty record", func(t *testing.T) {
		pred := clf.Predict(project.Record{})
		assert.Equal(t, "unknown", pred.Name)
	})
}

func TestTrainRejectsUnusableSamples(t *testing.T) {
	clf := NewClassifier()
	err := clf.Train([]Sample{
		{Text: "   ", Label: "web_development"},
		{Text: "valid text", Label: ""},
	})
	assert.ErrorIs(t, err, ErrNoTrainingData)
	assert.False(t, clf.Trained())
}

func TestTrainingDeterminism(t *testing.T) {
	first := NewClassifier()
	second := NewClassifier()
	require.NoError(t, first.TrainBuiltin())
	require.NoError(t, second.TrainBuiltin())

	texts := []string{
		"deep learning classification model",
		"unity game engine with 3d modeling",
		"firmware for a microcontroller with rtos",
	}
	for _, text := range texts {
		a := first.PredictText(text)
		b := second.PredictText(text)
		assert.Equal(t, a.Name, b.Name)
		require.Len(t, b.Probabilities, len(a.Probabilities))
		for class, p := range a.Probabilities {
			assert.InDelta(t, p, b.Probabilities[class], 1e-12)
		}
	}
}

func TestTrainingCorpus(t *testing.T) {
	corpus := TrainingCorpus()
	require.NotEmpty(t, corpus)
	assert.Equal(t, corpus, TrainingCorpus())

	labels := make(map[string]bool)
	for _, s := range corpus {
		require.NotEmpty(t, s.Text)
		require.NotEmpty(t, s.Label)
		labels[s.Label] = true
	}
	for _, category := range Categories() {
		assert.True(t, labels[category], "missing samples for %s", category)
	}
	assert.Len(t, Categories(), 10)
}

func TestClassifierInfo(t *testing.T) {
	clf := NewClassifier()
	info := clf.Info()
	assert.False(t, info.Loaded)
	assert.Equal(t, "1.0.0", info.Version)

	require.NoError(t, clf.TrainBuiltin())
	info = clf.Info()
	assert.True(t, info.Loaded)
	assert.Equal(t, "Project Classifier", info.ModelType)
	assert.Len(t, info.Classes, 10)
	assert.IsIncreasing(t, info.Classes)
	assert.Equal(t, len(TrainingCorpus()), info.TrainingSamples)
	assert.False(t, info.TrainedAt.IsZero())
}
