package textfeat

// FeatureBundle is the flat numeric feature map consumed by the scoring
// engine. Only the keys declared below ever appear in it; conditional keys
// (topic features, metadata numeric moments) are absent rather than zeroed
// when their inputs are missing.
type FeatureBundle map[string]float64

// Text features.
const (
	TextLength       = "text_length"
	WordCount        = "word_count"
	SentenceCount    = "sentence_count"
	VocabularySize   = "vocabulary_size"
	LexicalDiversity = "lexical_diversity"
	AvgWordLength    = "avg_word_length"
	ReadabilityScore = "readability_score"
)

// Topic features, present only when the corpus exceeds 100 characters.
// MainTopic is the index into the topic model's order, -1 when the text
// touches no topic.
const (
	Topic0Weight = "topic_0_weight"
	Topic1Weight = "topic_1_weight"
	Topic2Weight = "topic_2_weight"
	Topic3Weight = "topic_3_weight"
	Topic4Weight = "topic_4_weight"
	MainTopic    = "main_topic"
	TopicEntropy = "topic_entropy"
)

var topicWeightKeys = []string{
	Topic0Weight, Topic1Weight, Topic2Weight, Topic3Weight, Topic4Weight,
}

// Tech stack features, computed from the declared list as given.
const (
	TechCount         = "tech_count"
	TechDiversity     = "tech_diversity"
	TechCategoryCount = "tech_category_count"
	PopularTechRatio  = "popular_tech_ratio"
)

// Metadata features. The numeric moments appear only when at least one
// numeric value exists.
const (
	MetadataFieldCount  = "metadata_field_count"
	MetadataTextLength  = "metadata_text_length"
	MetadataNumericCnt  = "metadata_numeric_count"
	MetadataNumericMean = "metadata_numeric_mean"
	MetadataNumericStd  = "metadata_numeric_std"
	MetadataListCount   = "metadata_list_count"
)

// Keyword density features over name+description.
const (
	QualityCode          = "quality_score_code"
	QualityArchitecture  = "quality_score_architecture"
	QualityDocumentation = "quality_score_documentation"
	QualityTesting       = "quality_score_testing"
	QualitySecurity      = "quality_score_security"
	OverallQuality       = "overall_quality_score"

	InnovationNovelty    = "innovation_score_novelty"
	InnovationComplexity = "innovation_score_complexity"
	InnovationAutomation = "innovation_score_automation"
	OverallInnovation    = "overall_innovation_score"

	BusinessMarket  = "business_score_market"
	BusinessUser    = "business_score_user"
	BusinessScale   = "business_score_scale"
	OverallBusiness = "overall_business_score"
)

// Complexity features. ProjectSize is a tier: 0 none, 1 small, 2 medium
// (>5 techs), 3 large (>10 techs).
const (
	TechComplexity     = "tech_complexity"
	TextComplexity     = "text_complexity"
	MetadataComplexity = "metadata_complexity"
	OverallComplexity  = "overall_complexity"
	ProjectSize        = "project_size"
)

// Derived composites.
const (
	MaturityScore        = "maturity_score"
	RiskScore            = "risk_score"
	FeasibilityScore     = "feasibility_score"
	MaintainabilityScore = "maintainability_score"
	InnovationPotential  = "innovation_potential"
)

// AllKeys lists every key a bundle may carry, in documentation order.
func AllKeys() []string {
	return []string{
		TextLength, WordCount, SentenceCount, VocabularySize,
		LexicalDiversity, AvgWordLength, ReadabilityScore,
		Topic0Weight, Topic1Weight, Topic2Weight, Topic3Weight, Topic4Weight,
		MainTopic, TopicEntropy,
		TechCount, TechDiversity, TechCategoryCount, PopularTechRatio,
		MetadataFieldCount, MetadataTextLength, MetadataNumericCnt,
		MetadataNumericMean, MetadataNumericStd, MetadataListCount,
		QualityCode, QualityArchitecture, QualityDocumentation,
		QualityTesting, QualitySecurity, OverallQuality,
		InnovationNovelty, InnovationComplexity, InnovationAutomation,
		OverallInnovation,
		BusinessMarket, BusinessUser, BusinessScale, OverallBusiness,
		TechComplexity, TextComplexity, MetadataComplexity,
		OverallComplexity, ProjectSize,
		MaturityScore, RiskScore, FeasibilityScore,
		MaintainabilityScore, InnovationPotential,
	}
}

// At returns the feature value, zero when the key is absent.
func (b FeatureBundle) At(key string) float64 { return b[key] }

// Has reports whether the key is present.
func (b FeatureBundle) Has(key string) bool {
	_, ok := b[key]
	return ok
}
