// Package topics maps free text onto a fixed set of project topics with a
// nearest-centroid model trained once at startup from a deterministic
// synthetic corpus. Transform is a pure read and safe for concurrent use.
package topics

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Order fixes the topic list and the index every weight reports under.
var Order = []string{"technology", "business", "development", "quality", "innovation"}

// topicSeeds holds the vocabulary each centroid is trained from.
var topicSeeds = map[string][]string{
	"technology": {
		"software", "application", "system", "platform", "solution",
		"framework", "library", "tool", "api", "sdk", "interface",
		"database", "server", "client", "network", "protocol",
	},
	"business": {
		"business", "market", "product", "service", "customer",
		"user", "client", "revenue", "profit", "growth", "scale",
		"competitive", "strategy", "plan", "goal", "objective",
	},
	"development": {
		"develop", "build", "create", "implement", "design",
		"code", "program", "script", "test", "debug", "deploy",
		"maintain", "update", "refactor", "optimize", "integrate",
	},
	"quality": {
		"quality", "reliable", "stable", "secure", "efficient",
		"performant", "scalable", "maintainable", "readable",
		"documented", "tested", "robust", "resilient", "fault-tolerant",
	},
	"innovation": {
		"innovative", "novel", "unique", "advanced", "cutting-edge",
		"state-of-art", "revolutionary", "disruptive", "breakthrough",
		"creative", "original", "pioneering", "groundbreaking",
	},
}

// templateWords are corpus scaffolding tokens excluded from centroids and
// document vectors alike.
var templateWords = map[string]bool{
	"this": true, "is": true, "a": true, "for": true,
	"involving": true, "and": true, "project": true,
}

var tokenRe = regexp.MustCompile(`\w+`)

// Weight is one topic's share of a document.
type Weight struct {
	Topic  string  `json:"topic"`
	Weight float64 `json:"weight"`
}

// Distribution is the topic mixture of one document. Weights follow Order
// and sum to 1. Dominant is "general" when the text touches no topic.
type Distribution struct {
	Weights  []Weight `json:"weights"`
	Dominant string   `json:"dominant_topic"`
	Entropy  float64  `json:"entropy"`
}

// Model holds the fitted topic centroids.
type Model struct {
	centroids map[string]map[string]float64
	version   string
	trainedAt time.Time
}

type sample struct {
	text  string
	topic string
}

func syntheticCorpus() []sample {
	var out []sample
	for _, topic := range Order {
		terms := topicSeeds[topic]
		for _, term := range terms {
			out = append(out, sample{fmt.Sprintf("This is a %s project for %s", term, topic), topic})
		}
		for i := 0; i < len(terms)-1; i++ {
			out = append(out, sample{fmt.Sprintf("Project involving %s and %s for %s", terms[i], terms[i+1], topic), topic})
		}
	}
	return out
}

// Train fits a fresh model from the synthetic corpus. The corpus is fixed,
// so every call produces identical centroids.
func Train() *Model {
	centroids := make(map[string]map[string]float64, len(Order))
	for _, topic := range Order {
		centroids[topic] = make(map[string]float64)
	}
	for _, s := range syntheticCorpus() {
		vec := centroids[s.topic]
		for _, tok := range tokenize(s.text) {
			vec[tok]++
		}
	}
	return &Model{
		centroids: centroids,
		version:   "1.0.0",
		trainedAt: time.Now().UTC(),
	}
}

// Transform projects a document onto the topic centroids by cosine
// similarity, normalized into a distribution over Order.
func (m *Model) Transform(text string) Distribution {
	doc := make(map[string]float64)
	for _, tok := range tokenize(text) {
		doc[tok]++
	}

	weights := make([]Weight, len(Order))
	total := 0.0
	for i, topic := range Order {
		score := cosine(doc, m.centroids[topic])
		weights[i] = Weight{Topic: topic, Weight: score}
		total += score
	}

	if total == 0 {
		uniform := 1.0 / float64(len(Order))
		for i := range weights {
			weights[i].Weight = uniform
		}
		return Distribution{
			Weights:  weights,
			Dominant: "general",
			Entropy:  math.Log2(float64(len(Order))),
		}
	}

	best := 0
	entropy := 0.0
	for i := range weights {
		weights[i].Weight /= total
		if weights[i].Weight > weights[best].Weight {
			best = i
		}
		if w := weights[i].Weight; w > 0 {
			entropy -= w * math.Log2(w)
		}
	}
	return Distribution{Weights: weights, Dominant: Order[best], Entropy: entropy}
}

// Topics returns the topic labels in weight order.
func (m *Model) Topics() []string {
	return append([]string(nil), Order...)
}

// ModelInfo describes the fitted topic model.
type ModelInfo struct {
	Version   string    `json:"version"`
	ModelType string    `json:"model_type"`
	Topics    []string  `json:"topics"`
	TrainedAt time.Time `json:"trained_at"`
	Loaded    bool      `json:"is_loaded"`
}

// Info reports the fitted model state.
func (m *Model) Info() ModelInfo {
	return ModelInfo{
		Version:   m.version,
		ModelType: "Topic Model",
		Topics:    m.Topics(),
		TrainedAt: m.trainedAt,
		Loaded:    len(m.centroids) > 0,
	}
}

func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if !templateWords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for tok, va := range a {
		normA += va * va
		if vb, ok := b[tok]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if dot == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
