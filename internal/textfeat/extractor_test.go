package textfeat

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/projectmeter/internal/lexicon"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/topics"
)

func newTestExtractor() *Extractor {
	return NewExtractor(lexicon.New(), topics.Train())
}

func TestExtractTextFeatures(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{Name: "Todo App", Description: "Simple and clean. Fully tested."}
	b := ex.Extract(rec)

	// corpus: "Todo App Simple and clean. Fully tested."
	assert.Equal(t, 40.0, b[TextLength])
	assert.Equal(t, 7.0, b[WordCount])
	assert.Equal(t, 2.0, b[SentenceCount])
	assert.Equal(t, 7.0, b[VocabularySize])
	assert.Equal(t, 1.0, b[LexicalDiversity])
	assert.InDelta(t, 34.0/7.0, b[AvgWordLength], 1e-9)
	assert.InDelta(t, 206.835-1.015*3.5-84.6*(34.0/7.0), b[ReadabilityScore], 1e-9)

	// short corpus carries no topic features
	assert.False(t, b.Has(Topic0Weight))
	assert.False(t, b.Has(MainTopic))
	assert.False(t, b.Has(TopicEntropy))
}

func TestExtractKeywordFeatures(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{Name: "Todo App", Description: "Simple and clean. Fully tested."}
	b := ex.Extract(rec)

	assert.InDelta(t, 0.4, b[QualityCode], 1e-9)
	assert.Zero(t, b[QualityArchitecture])
	assert.Zero(t, b[QualityDocumentation])
	assert.Zero(t, b[QualityTesting])
	assert.Zero(t, b[QualitySecurity])
	assert.InDelta(t, 0.08, b[OverallQuality], 1e-9)
	assert.Zero(t, b[OverallInnovation])
	assert.Zero(t, b[OverallBusiness])

	assert.InDelta(t, 0.04, b[MaturityScore], 1e-9)
	assert.InDelta(t, 0.2, b[MaintainabilityScore], 1e-9)
	assert.InDelta(t, 0.5, b[FeasibilityScore], 1e-9)
}

func TestExtractSubstringMatching(t *testing.T) {
	ex := newTestExtractor()
	// "maintained" embeds "ai", so the automation category scores.
	b := ex.Extract(project.Record{Name: "svc", Description: "well maintained"})
	assert.InDelta(t, 0.2, b[InnovationAutomation], 1e-9)
}

func TestExtractTechFeatures(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{
		Name:      "platform",
		TechStack: []string{"python", "Python", "fastapi", "postgresql", "docker", "k8s"},
	}
	b := ex.Extract(rec)

	assert.Equal(t, 6.0, b[TechCount])
	assert.Equal(t, 1.0, b[TechDiversity])
	// language, framework, database, tool, plus "other" for the alias form
	assert.Equal(t, 5.0, b[TechCategoryCount])
	assert.InDelta(t, 4.0/6.0, b[PopularTechRatio], 1e-9)
	assert.Equal(t, 1.0, b[TechComplexity])
	assert.Equal(t, 2.0, b[ProjectSize])
}

func TestExtractTechSizeTiers(t *testing.T) {
	ex := newTestExtractor()
	tests := []struct {
		name  string
		stack []string
		want  float64
	}{
		{name: "none", stack: nil, want: 0},
		{name: "small", stack: []string{"go"}, want: 1},
		{name: "medium", stack: make([]string, 6), want: 2},
		{name: "large", stack: make([]string, 11), want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ex.Extract(project.Record{TechStack: tt.stack})
			assert.Equal(t, tt.want, b[ProjectSize])
		})
	}
}

func TestExtractMetadataFeatures(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{
		Name: "svc",
		Metadata: map[string]any{
			"team":   4,
			"budget": 2.5,
			"active": true,
			"note":   "ready",
			"tags":   []string{"a", "b"},
		},
	}
	b := ex.Extract(rec)

	assert.Equal(t, 5.0, b[MetadataFieldCount])
	assert.Equal(t, 5.0, b[MetadataTextLength])
	assert.Equal(t, 3.0, b[MetadataNumericCnt])
	assert.Equal(t, 1.0, b[MetadataListCount])
	assert.InDelta(t, 2.5, b[MetadataNumericMean], 1e-9)
	assert.InDelta(t, math.Sqrt(1.5), b[MetadataNumericStd], 1e-9)
}

func TestExtractMetadataMomentsAbsent(t *testing.T) {
	ex := newTestExtractor()
	b := ex.Extract(project.Record{Name: "svc", Metadata: map[string]any{"note": "ready"}})
	assert.Zero(t, b[MetadataNumericCnt])
	assert.False(t, b.Has(MetadataNumericMean))
	assert.False(t, b.Has(MetadataNumericStd))
}

func TestExtractTopicFeatures(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{
		Name: "Lab",
		Description: "An innovative and novel research platform with a breakthrough " +
			"revolutionary approach to creative and pioneering experiments.",
	}
	b := ex.Extract(rec)

	require.True(t, b.Has(TopicEntropy))
	assert.Equal(t, 4.0, b[MainTopic])

	sum := 0.0
	for _, key := range topicWeightKeys {
		require.True(t, b.Has(key))
		sum += b[key]
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.GreaterOrEqual(t, b[TopicEntropy], 0.0)
}

func TestExtractTopicFeaturesNoSignal(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{
		Name:        "x",
		Description: strings.Repeat("zzz qqq ", 20),
	}
	b := ex.Extract(rec)

	require.True(t, b.Has(MainTopic))
	assert.Equal(t, -1.0, b[MainTopic])
	assert.InDelta(t, math.Log2(5), b[TopicEntropy], 1e-9)
}

func TestExtractEmptyRecord(t *testing.T) {
	ex := newTestExtractor()
	b := ex.Extract(project.Record{})

	assert.Zero(t, b[TextLength])
	assert.Zero(t, b[WordCount])
	assert.Zero(t, b[SentenceCount])
	assert.Zero(t, b[LexicalDiversity])
	assert.Zero(t, b[ReadabilityScore])
	assert.Zero(t, b[TechCount])
	assert.Zero(t, b[TechDiversity])
	assert.Zero(t, b[OverallComplexity])
	assert.Zero(t, b[ProjectSize])
	assert.InDelta(t, 0.5, b[FeasibilityScore], 1e-9)
}

func TestExtractIdempotent(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{
		Name:        "Analytics Suite",
		Description: "A documented, tested and scalable analytics platform for market growth.",
		TechStack:   []string{"python", "postgresql", "docker"},
		Metadata:    map[string]any{"stars": 120, "license": "mit"},
	}

	first := ex.Extract(rec)
	second := ex.Extract(rec)
	assert.Equal(t, first, second)
}

func TestExtractClosedKeySet(t *testing.T) {
	ex := newTestExtractor()
	rec := project.Record{
		Name:        "Everything",
		Description: strings.Repeat("an innovative documented platform to build and scale ", 4),
		TechStack:   []string{"python", "react", "docker", "redis", "terraform", "go"},
		Metadata:    map[string]any{"stars": 9, "tags": []string{"x"}, "note": "n"},
	}
	b := ex.Extract(rec)

	allowed := make(map[string]bool, len(AllKeys()))
	for _, key := range AllKeys() {
		allowed[key] = true
	}
	for key := range b {
		assert.True(t, allowed[key], "unexpected feature key %q", key)
	}
}

func TestExtractorInfo(t *testing.T) {
	info := newTestExtractor().Info()
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "Feature Extractor", info.ModelType)
	assert.Equal(t, 5, info.TopicCount)
	assert.Equal(t, len(AllKeys()), info.FeatureCount)
	assert.True(t, info.Loaded)
}
