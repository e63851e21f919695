// Package classify assigns project categories with a multinomial naive
// Bayes model trained on a deterministic synthetic corpus.
package classify

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/veridex/projectmeter/internal/project"
)

// CategoryScore pairs a label with its probability.
type CategoryScore struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// Prediction is the classifier output. Probabilities always sum to 1.
type Prediction struct {
	Name          string             `json:"name"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"category_probabilities"`
	TopCategories []CategoryScore    `json:"top_categories"`
}

// Classifier is a multinomial naive Bayes model with Laplace smoothing
// over unigram counts. Immutable after Train, safe for concurrent Predict.
type Classifier struct {
	classes     []string
	docCounts   map[string]int
	tokenCounts map[string]map[string]float64
	totalTokens map[string]float64
	vocab       map[string]struct{}
	totalDocs   int
	version     string
	trainedAt   time.Time
	sampleCount int
}

// NewClassifier returns an untrained classifier; call Train or TrainBuiltin
// before predicting.
func NewClassifier() *Classifier {
	return &Classifier{version: "1.0.0"}
}

// ErrNoTrainingData is returned when Train receives no usable samples.
var ErrNoTrainingData = errors.New("classify: no usable training samples")

var nonWordSpaceRe = regexp.MustCompile(`[^\w\s]`)

// cleanText lowercases and strips everything except word characters and
// spaces, collapsing runs of whitespace.
func cleanText(text string) string {
	text = strings.ToLower(text)
	text = nonWordSpaceRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// TrainBuiltin trains on the synthetic corpus.
func (c *Classifier) TrainBuiltin() error {
	return c.Train(TrainingCorpus())
}

// Train fits the model from labeled samples, replacing any previous state.
func (c *Classifier) Train(samples []Sample) error {
	docCounts := make(map[string]int)
	tokenCounts := make(map[string]map[string]float64)
	totalTokens := make(map[string]float64)
	vocab := make(map[string]struct{})
	usable := 0

	for _, s := range samples {
		text := cleanText(s.Text)
		if text == "" || s.Label == "" {
			continue
		}
		usable++
		docCounts[s.Label]++
		if tokenCounts[s.Label] == nil {
			tokenCounts[s.Label] = make(map[string]float64)
		}
		for _, tok := range strings.Fields(text) {
			tokenCounts[s.Label][tok]++
			totalTokens[s.Label]++
			vocab[tok] = struct{}{}
		}
	}
	if usable == 0 {
		return ErrNoTrainingData
	}

	classes := make([]string, 0, len(docCounts))
	for label := range docCounts {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	c.classes = classes
	c.docCounts = docCounts
	c.tokenCounts = tokenCounts
	c.totalTokens = totalTokens
	c.vocab = vocab
	c.totalDocs = usable
	c.trainedAt = time.Now().UTC()
	c.sampleCount = usable
	return nil
}

// Trained reports whether the model holds fitted parameters.
func (c *Classifier) Trained() bool { return len(c.classes) > 0 }

// Predict classifies a project record from its combined text fields.
func (c *Classifier) Predict(rec project.Record) Prediction {
	var parts []string
	if rec.Name != "" {
		parts = append(parts, rec.Name)
	}
	if rec.Description != "" {
		parts = append(parts, rec.Description)
	}
	if len(rec.TechStack) > 0 {
		parts = append(parts, strings.Join(rec.TechStack, " "))
	}
	parts = append(parts, rec.StringMetadata()...)
	return c.PredictText(strings.Join(parts, " "))
}

// PredictText classifies raw text. Empty cleaned text or an untrained
// model yields the unknown prediction with zero confidence.
func (c *Classifier) PredictText(text string) Prediction {
	cleaned := cleanText(text)
	if cleaned == "" || !c.Trained() {
		return unknownPrediction()
	}

	tokens := strings.Fields(cleaned)
	vocabSize := float64(len(c.vocab))

	logScores := make([]float64, len(c.classes))
	for i, class := range c.classes {
		score := math.Log(float64(c.docCounts[class]) / float64(c.totalDocs))
		denom := c.totalTokens[class] + vocabSize
		for _, tok := range tokens {
			score += math.Log((c.tokenCounts[class][tok] + 1) / denom)
		}
		logScores[i] = score
	}

	probs := softmax(logScores)
	probabilities := make(map[string]float64, len(c.classes))
	best := 0
	for i, class := range c.classes {
		probabilities[class] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}

	return Prediction{
		Name:          c.classes[best],
		Confidence:    probs[best],
		Probabilities: probabilities,
		TopCategories: topCategories(probabilities, 3),
	}
}

func unknownPrediction() Prediction {
	return Prediction{
		Name:          "unknown",
		Confidence:    0,
		Probabilities: map[string]float64{"unknown": 1},
		TopCategories: []CategoryScore{{Name: "unknown", Probability: 1}},
	}
}

// Unknown returns the prediction used when no signal is available.
func Unknown() Prediction { return unknownPrediction() }

func softmax(logScores []float64) []float64 {
	maxScore := logScores[0]
	for _, s := range logScores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	probs := make([]float64, len(logScores))
	sum := 0.0
	for i, s := range logScores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func topCategories(probabilities map[string]float64, n int) []CategoryScore {
	out := make([]CategoryScore, 0, len(probabilities))
	for name, p := range probabilities {
		out = append(out, CategoryScore{Name: name, Probability: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ModelInfo describes the fitted classifier.
type ModelInfo struct {
	Version         string    `json:"version"`
	ModelType       string    `json:"model_type"`
	Classes         []string  `json:"classes"`
	TrainingSamples int       `json:"training_samples"`
	TrainedAt       time.Time `json:"trained_at"`
	Loaded          bool      `json:"is_loaded"`
}

// Info reports the fitted model state.
func (c *Classifier) Info() ModelInfo {
	return ModelInfo{
		Version:         c.version,
		ModelType:       "Project Classifier",
		Classes:         append([]string(nil), c.classes...),
		TrainingSamples: c.sampleCount,
		TrainedAt:       c.trainedAt,
		Loaded:          c.Trained(),
	}
}
