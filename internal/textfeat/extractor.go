// Package textfeat turns a project record into the flat numeric
// FeatureBundle the scoring engine consumes. Extraction is a pure read
// over the record and the startup-trained topic model, so repeated calls
// on an unchanged record yield identical bundles.
package textfeat

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/veridex/projectmeter/internal/lexicon"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/topics"
)

var qualityKeywords = map[string][]string{
	"code":          {"clean", "maintainable", "readable", "modular", "tested"},
	"architecture":  {"scalable", "microservices", "modular", "decoupled", "layered"},
	"documentation": {"documented", "api docs", "readme", "comments", "tutorial"},
	"testing":       {"unit test", "integration test", "coverage", "tdd", "bdd"},
	"security":      {"secure", "encrypted", "authentication", "authorization", "ssl"},
}

var innovationKeywords = map[string][]string{
	"novelty":    {"innovative", "novel", "unique", "groundbreaking", "original"},
	"complexity": {"complex", "sophisticated", "advanced", "cutting-edge", "state-of-art"},
	"automation": {"automated", "ai", "machine learning", "intelligent", "smart"},
}

var businessKeywords = map[string][]string{
	"market": {"market", "business", "commercial", "revenue", "profit"},
	"user":   {"user", "customer", "audience", "demand", "need"},
	"scale":  {"scalable", "growth", "expansion", "large-scale", "enterprise"},
}

var popularTech = map[string]bool{
	"python": true, "javascript": true, "react": true,
	"docker": true, "postgresql": true,
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Extractor computes feature bundles against a lexicon and a fitted topic
// model. Both are read-only after construction.
type Extractor struct {
	lexicon *lexicon.Lexicon
	topics  *topics.Model
	version string
}

// NewExtractor returns an extractor over the given lexicon and topic model.
func NewExtractor(lx *lexicon.Lexicon, model *topics.Model) *Extractor {
	return &Extractor{lexicon: lx, topics: model, version: "1.0.0"}
}

// Extract computes the full feature bundle for a record.
func (e *Extractor) Extract(rec project.Record) FeatureBundle {
	features := make(FeatureBundle, 48)
	e.textFeatures(rec, features)
	e.techFeatures(rec, features)
	metadataFeatures(rec, features)
	keywordFeatures(rec, features)
	complexityFeatures(features)
	derivedFeatures(features)
	return features
}

func (e *Extractor) textFeatures(rec project.Record, features FeatureBundle) {
	corpus := rec.CorpusText()
	corpusLen := utf8.RuneCountInString(corpus)
	words := strings.Fields(corpus)
	sentences := countSentences(corpus, len(words))

	features[TextLength] = float64(corpusLen)
	features[WordCount] = float64(len(words))
	features[SentenceCount] = float64(sentences)

	unique := make(map[string]struct{}, len(words))
	runeTotal := 0
	for _, w := range words {
		lw := strings.ToLower(w)
		unique[lw] = struct{}{}
		runeTotal += utf8.RuneCountInString(lw)
	}
	features[VocabularySize] = float64(len(unique))
	if len(words) > 0 {
		features[LexicalDiversity] = float64(len(unique)) / float64(len(words))
		features[AvgWordLength] = float64(runeTotal) / float64(len(words))
	} else {
		features[LexicalDiversity] = 0
		features[AvgWordLength] = 0
	}

	if sentences > 0 && len(words) > 0 {
		features[ReadabilityScore] = 206.835 -
			1.015*(float64(len(words))/float64(sentences)) -
			84.6*features[AvgWordLength]
	} else {
		features[ReadabilityScore] = 0
	}

	if corpusLen > 100 && e.topics != nil {
		dist := e.topics.Transform(corpus)
		for i, key := range topicWeightKeys {
			if i < len(dist.Weights) {
				features[key] = dist.Weights[i].Weight
			}
		}
		features[MainTopic] = float64(topicIndex(dist.Dominant))
		features[TopicEntropy] = dist.Entropy
	}
}

func (e *Extractor) techFeatures(rec project.Record, features FeatureBundle) {
	stack := rec.TechStack
	features[TechCount] = float64(len(stack))

	unique := make(map[string]struct{}, len(stack))
	categories := make(map[string]struct{})
	popular := 0
	for _, tech := range stack {
		unique[tech] = struct{}{}
		lower := strings.ToLower(tech)
		if popularTech[lower] {
			popular++
		}
		category := "other"
		if e.lexicon != nil {
			if entry, ok := e.lexicon.Entry(lower); ok {
				category = entry.Category
			}
		}
		categories[category] = struct{}{}
	}

	denom := float64(maxInt(len(stack), 1))
	features[TechDiversity] = minFloat(float64(len(unique))/denom, 1)
	features[TechCategoryCount] = float64(len(categories))
	features[PopularTechRatio] = float64(popular) / denom
}

func metadataFeatures(rec project.Record, features FeatureBundle) {
	features[MetadataFieldCount] = float64(len(rec.Metadata))

	textLen := 0
	lists := 0
	for _, v := range rec.Metadata {
		switch val := v.(type) {
		case string:
			textLen += utf8.RuneCountInString(val)
		case []any:
			lists++
		case []string:
			lists++
		}
	}
	features[MetadataTextLength] = float64(textLen)
	features[MetadataListCount] = float64(lists)

	numeric := rec.NumericMetadata()
	features[MetadataNumericCnt] = float64(len(numeric))
	if len(numeric) > 0 {
		mean := meanFloat(numeric)
		features[MetadataNumericMean] = mean
		features[MetadataNumericStd] = stdFloat(numeric, mean)
	}
}

func keywordFeatures(rec project.Record, features FeatureBundle) {
	text := strings.ToLower(rec.Name + " " + rec.Description)

	code := keywordDensity(text, qualityKeywords["code"])
	arch := keywordDensity(text, qualityKeywords["architecture"])
	doc := keywordDensity(text, qualityKeywords["documentation"])
	testing := keywordDensity(text, qualityKeywords["testing"])
	security := keywordDensity(text, qualityKeywords["security"])
	features[QualityCode] = code
	features[QualityArchitecture] = arch
	features[QualityDocumentation] = doc
	features[QualityTesting] = testing
	features[QualitySecurity] = security
	features[OverallQuality] = (code + arch + doc + testing + security) / 5

	novelty := keywordDensity(text, innovationKeywords["novelty"])
	complexity := keywordDensity(text, innovationKeywords["complexity"])
	automation := keywordDensity(text, innovationKeywords["automation"])
	features[InnovationNovelty] = novelty
	features[InnovationComplexity] = complexity
	features[InnovationAutomation] = automation
	features[OverallInnovation] = (novelty + complexity + automation) / 3

	market := keywordDensity(text, businessKeywords["market"])
	user := keywordDensity(text, businessKeywords["user"])
	scale := keywordDensity(text, businessKeywords["scale"])
	features[BusinessMarket] = market
	features[BusinessUser] = user
	features[BusinessScale] = scale
	features[OverallBusiness] = (market + user + scale) / 3
}

func complexityFeatures(features FeatureBundle) {
	features[TechComplexity] = minFloat(features[TechCount]*0.2+features[TechCategoryCount]*0.3, 1)
	features[TextComplexity] = minFloat((features[TextLength]/10000+features[WordCount]/500)/2, 1)
	features[MetadataComplexity] = minFloat(features[MetadataFieldCount]/20, 1)
	features[OverallComplexity] = (features[TechComplexity] +
		features[TextComplexity] + features[MetadataComplexity]) / 3

	size := 0.0
	switch techCount := features[TechCount]; {
	case techCount > 10:
		size = 3
	case techCount > 5:
		size = 2
	case techCount > 0:
		size = 1
	}
	features[ProjectSize] = size
}

func derivedFeatures(features FeatureBundle) {
	quality := features[OverallQuality]
	features[MaturityScore] = (quality + features[PopularTechRatio]) / 2
	features[RiskScore] = features[OverallComplexity] * (1 - quality)
	features[FeasibilityScore] = (features[PopularTechRatio] + (1 - features[TechDiversity])) / 2
	features[MaintainabilityScore] = (features[QualityDocumentation] + features[QualityCode]) / 2
	features[InnovationPotential] = (features[OverallInnovation] + features[InnovationNovelty]) / 2
}

// keywordDensity scores a dictionary category: matched terms over
// dictionary size. Matching is by substring over the lowercased text.
func keywordDensity(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return float64(count) / float64(len(keywords))
}

func countSentences(text string, wordCount int) int {
	n := 0
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	if n == 0 && wordCount > 0 {
		n = 1
	}
	return n
}

func topicIndex(name string) int {
	for i, topic := range topics.Order {
		if topic == name {
			return i
		}
	}
	return -1
}

// ModelInfo describes the extractor.
type ModelInfo struct {
	Version      string `json:"version"`
	ModelType    string `json:"model_type"`
	FeatureCount int    `json:"feature_count"`
	TopicCount   int    `json:"topic_count"`
	Loaded       bool   `json:"is_loaded"`
}

// Info reports the extractor state.
func (e *Extractor) Info() ModelInfo {
	topicCount := 0
	if e.topics != nil {
		topicCount = len(e.topics.Topics())
	}
	return ModelInfo{
		Version:      e.version,
		ModelType:    "Feature Extractor",
		FeatureCount: len(AllKeys()),
		TopicCount:   topicCount,
		Loaded:       e.topics != nil,
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func meanFloat(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdFloat(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
