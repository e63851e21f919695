package scoring

import (
	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/textfeat"
)

// mlFeatureVector is the fixed named feature set fed to the simulated
// model. RiskLevel and Category stay strings; the rule table keys on them
// directly.
type mlFeatureVector struct {
	TextLength          float64
	VocabularySize      float64
	ReadabilityScore    float64
	TechCount           float64
	TechDiversity       float64
	PopularTechRatio    float64
	OverallQuality      float64
	CodeQuality         float64
	ArchitectureQuality float64
	OverallInnovation   float64
	NoveltyScore        float64
	OverallComplexity   float64
	ProjectSize         float64
	RiskLevel           string
	SentimentScore      float64
	Category            string
	CategoryConfidence  float64
}

func extractMLFeatures(bundle analysis.Bundle) mlFeatureVector {
	f := bundle.Features
	return mlFeatureVector{
		TextLength:          f.At(textfeat.TextLength),
		VocabularySize:      f.At(textfeat.VocabularySize),
		ReadabilityScore:    f.At(textfeat.ReadabilityScore),
		TechCount:           f.At(textfeat.TechCount),
		TechDiversity:       f.At(textfeat.TechDiversity),
		PopularTechRatio:    f.At(textfeat.PopularTechRatio),
		OverallQuality:      f.At(textfeat.OverallQuality),
		CodeQuality:         f.At(textfeat.QualityCode),
		ArchitectureQuality: f.At(textfeat.QualityArchitecture),
		OverallInnovation:   f.At(textfeat.OverallInnovation),
		NoveltyScore:        f.At(textfeat.InnovationNovelty),
		OverallComplexity:   f.At(textfeat.OverallComplexity),
		ProjectSize:         f.At(textfeat.ProjectSize),
		RiskLevel:           bundle.Risk.Level,
		SentimentScore:      bundle.NLP.Sentiment.Score,
		Category:            bundle.Category.Name,
		CategoryConfidence:  bundle.Category.Confidence,
	}
}

// trace renders the vector under its documented feature names.
func (v mlFeatureVector) trace() map[string]any {
	return map[string]any{
		"text_length":              v.TextLength,
		"vocabulary_size":          v.VocabularySize,
		"readability_score":        v.ReadabilityScore,
		"tech_count":               v.TechCount,
		"tech_diversity":           v.TechDiversity,
		"popular_tech_ratio":       v.PopularTechRatio,
		"overall_quality_score":    v.OverallQuality,
		"code_quality":             v.CodeQuality,
		"architecture_quality":     v.ArchitectureQuality,
		"overall_innovation_score": v.OverallInnovation,
		"novelty_score":            v.NoveltyScore,
		"overall_complexity":       v.OverallComplexity,
		"project_size":             v.ProjectSize,
		"risk_level":               v.RiskLevel,
		"sentiment_score":          v.SentimentScore,
		"category":                 v.Category,
		"category_confidence":      v.CategoryConfidence,
	}
}

// MLAlgorithm stands in for a trained model with a deterministic rule table
// over a fixed feature vector. A production deployment would load persisted
// model weights here instead. On failure it falls back to the advanced
// algorithm's result.
type MLAlgorithm struct{}

func (MLAlgorithm) Name() string    { return AlgorithmML }
func (MLAlgorithm) Version() string { return "3.0.0" }

func (a MLAlgorithm) Score(rec project.Record, bundle analysis.Bundle) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = AdvancedAlgorithm{}.Score(rec, bundle)
		}
	}()

	vector := extractMLFeatures(bundle)
	scores := simulatePrediction(vector)

	quality := scores[DimQuality]
	innovation := scores[DimInnovation]
	feasibility := scores[DimFeasibility]
	business := scores[DimBusinessValue]

	return Result{
		QualityScore:       quality,
		InnovationScore:    innovation,
		FeasibilityScore:   feasibility,
		BusinessValueScore: business,
		OverallScore:       overallScore(quality, innovation, feasibility, business, DefaultWeights()),
		Details: map[string]any{
			"algorithm":   a.Name(),
			"version":     a.Version(),
			"ml_features": vector.trace(),
			"model_used":  "simulated_ml_model",
			"timestamp":   traceTimestamp(),
		},
		AlgorithmVersion: a.Version(),
	}
}

// simulatePrediction applies the rule table. The first three rules assign
// rather than accumulate, so the stack-size rule replaces an earlier
// readability adjustment to quality; only the risk rules add on top.
func simulatePrediction(v mlFeatureVector) map[string]float64 {
	scores := map[string]float64{
		DimQuality:       50,
		DimInnovation:    50,
		DimFeasibility:   50,
		DimBusinessValue: 50,
	}

	adj := make(map[string]float64)
	if v.ReadabilityScore > 60 {
		adj[DimQuality] = 10
	} else if v.ReadabilityScore < 30 {
		adj[DimQuality] = -5
	}
	if v.TechCount > 5 {
		adj[DimFeasibility] = -5
		adj[DimQuality] = -3
	}
	if v.NoveltyScore > 0.5 {
		adj[DimInnovation] = 15
	}
	switch v.RiskLevel {
	case "high":
		adj[DimFeasibility] -= 10
	case "low":
		adj[DimFeasibility] += 5
	}

	for dim := range scores {
		scores[dim] = clampScore(scores[dim] + adj[dim])
	}
	return scores
}
