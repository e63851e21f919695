package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// modelSnapshot is the JSON on-disk form of a fitted classifier.
type modelSnapshot struct {
	Version     string                        `json:"version"`
	Classes     []string                      `json:"classes"`
	DocCounts   map[string]int                `json:"doc_counts"`
	TokenCounts map[string]map[string]float64 `json:"token_counts"`
	TotalTokens map[string]float64            `json:"total_tokens"`
	Vocab       []string                      `json:"vocab"`
	TotalDocs   int                           `json:"total_docs"`
	TrainedAt   time.Time                     `json:"trained_at"`
	SampleCount int                           `json:"sample_count"`
}

// Save writes the fitted model as JSON, creating parent directories.
func (c *Classifier) Save(path string) error {
	if !c.Trained() {
		return ErrNoTrainingData
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model dir: %w", err)
		}
	}

	vocab := make([]string, 0, len(c.vocab))
	for tok := range c.vocab {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	snapshot := modelSnapshot{
		Version:     c.version,
		Classes:     c.classes,
		DocCounts:   c.docCounts,
		TokenCounts: c.tokenCounts,
		TotalTokens: c.totalTokens,
		Vocab:       vocab,
		TotalDocs:   c.totalDocs,
		TrainedAt:   c.trainedAt,
		SampleCount: c.sampleCount,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// LoadClassifier reads a model snapshot written by Save.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var snapshot modelSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if len(snapshot.Classes) == 0 || snapshot.TotalDocs == 0 {
		return nil, fmt.Errorf("model snapshot %s holds no fitted parameters", path)
	}

	vocab := make(map[string]struct{}, len(snapshot.Vocab))
	for _, tok := range snapshot.Vocab {
		vocab[tok] = struct{}{}
	}

	version := snapshot.Version
	if version == "" {
		version = "1.0.0"
	}
	return &Classifier{
		classes:     snapshot.Classes,
		docCounts:   snapshot.DocCounts,
		tokenCounts: snapshot.TokenCounts,
		totalTokens: snapshot.TotalTokens,
		vocab:       vocab,
		totalDocs:   snapshot.TotalDocs,
		version:     version,
		trainedAt:   snapshot.TrainedAt,
		sampleCount: snapshot.SampleCount,
	}, nil
}
