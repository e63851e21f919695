package analysis

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/veridex/projectmeter/internal/classify"
	"github.com/veridex/projectmeter/internal/nlp"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/techstack"
	"github.com/veridex/projectmeter/internal/textfeat"
)

// Stage names recorded in Bundle.FailedStages.
const (
	StageFeatures = "features"
	StageCategory = "category"
	StageTech     = "tech_stack"
	StageNLP      = "nlp"
)

// RiskAssessment grades a project's delivery risk.
type RiskAssessment struct {
	Level           string   `json:"level"`
	Factors         []string `json:"factors"`
	OutdatedTech    []string `json:"outdated_technologies"`
	DependencyCount int      `json:"dependency_count"`
}

// Bundle is the merged output of one analysis run. Degraded marks bundles
// where at least one stage fell back to its zero value.
type Bundle struct {
	Category        classify.Prediction    `json:"category"`
	TechStack       techstack.Detection    `json:"tech_stack_analysis"`
	Features        textfeat.FeatureBundle `json:"features"`
	NLP             nlp.Analysis           `json:"nlp_analysis"`
	ComplexityScore float64                `json:"complexity_score"`
	MaturityScore   float64                `json:"maturity_score"`
	Risk            RiskAssessment         `json:"risk_assessment"`
	Recommendations []string               `json:"recommendations"`
	ModelVersions   map[string]string      `json:"model_versions"`
	Degraded        bool                   `json:"degraded,omitempty"`
	FailedStages    []string               `json:"failed_stages,omitempty"`
}

// Analyze runs the four analyzers concurrently and merges their output.
// A stage that panics or is cut off by ctx degrades to its zero value and
// is listed in FailedStages; Analyze itself never fails, so empty or
// nonsensical records still produce a fully populated bundle.
func (c *Context) Analyze(ctx context.Context, rec project.Record) Bundle {
	var (
		features textfeat.FeatureBundle
		category classify.Prediction
		tech     techstack.Detection
		text     nlp.Analysis
	)

	var mu sync.Mutex
	var failed []string

	g, gCtx := errgroup.WithContext(ctx)
	stage := func(name string, fn func()) func() error {
		return func() error {
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					failed = append(failed, name)
					mu.Unlock()
				}
			}()
			if gCtx.Err() != nil {
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
				return nil
			}
			fn()
			return nil
		}
	}

	g.Go(stage(StageFeatures, func() { features = c.extractor.Extract(rec) }))
	g.Go(stage(StageCategory, func() { category = c.classifier.Predict(rec) }))
	g.Go(stage(StageTech, func() { tech = c.detector.Detect(rec) }))
	g.Go(stage(StageNLP, func() { text = c.nlp.Analyze(rec.Description) }))
	_ = g.Wait()

	sort.Strings(failed)
	if features == nil {
		features = textfeat.FeatureBundle{}
	}
	if category.Name == "" {
		category = classify.Unknown()
	}

	risk := assessRisk(rec, features, tech)
	return Bundle{
		Category:        category,
		TechStack:       tech,
		Features:        features,
		NLP:             text,
		ComplexityScore: complexityScore(features, tech),
		MaturityScore:   maturityScore(features, tech),
		Risk:            risk,
		Recommendations: recommendations(features, tech, category, risk),
		ModelVersions:   c.ModelVersions(),
		Degraded:        len(failed) > 0,
		FailedStages:    failed,
	}
}
