package nlp

// Comparison relates two texts by token overlap, shared keyword categories,
// shared technology entities, topic and sentiment agreement.
type Comparison struct {
	SimilarityScore    float64  `json:"similarity_score"`
	CommonKeywords     []string `json:"common_keywords"`
	CommonTechnologies []string `json:"common_technologies"`
	TopicMatch         bool     `json:"topic_match"`
	Topic1             string   `json:"topic1"`
	Topic2             string   `json:"topic2"`
	SentimentMatch     bool     `json:"sentiment_match"`
	Sentiment1         string   `json:"sentiment1"`
	Sentiment2         string   `json:"sentiment2"`
}

// CompareTexts analyzes both texts and derives their overlap. Identical
// non-trivial texts score 1.0.
func (a *Analyzer) CompareTexts(text1, text2 string) Comparison {
	a1 := a.Analyze(text1)
	a2 := a.Analyze(text2)

	var common []string
	for _, category := range keywordCategoryOrder {
		if a1.Keywords.Categories[category] > 0 && a2.Keywords.Categories[category] > 0 {
			common = append(common, category)
		}
	}

	seen := make(map[string]bool, len(a2.Entities.Technologies))
	for _, tech := range a2.Entities.Technologies {
		seen[tech] = true
	}
	var commonTech []string
	for _, tech := range a1.Entities.Technologies {
		if seen[tech] {
			commonTech = append(commonTech, tech)
		}
	}

	return Comparison{
		SimilarityScore:    jaccardSimilarity(text1, text2),
		CommonKeywords:     common,
		CommonTechnologies: commonTech,
		TopicMatch:         a1.Topics.MainTopic == a2.Topics.MainTopic,
		Topic1:             a1.Topics.MainTopic,
		Topic2:             a2.Topics.MainTopic,
		SentimentMatch:     a1.Sentiment.Label == a2.Sentiment.Label,
		Sentiment1:         a1.Sentiment.Label,
		Sentiment2:         a2.Sentiment.Label,
	}
}

// jaccardSimilarity compares stop-word-filtered token sets.
func jaccardSimilarity(text1, text2 string) float64 {
	if text1 == "" || text2 == "" {
		return 0
	}

	set1 := tokenSet(text1)
	set2 := tokenSet(text2)

	intersection := 0
	for tok := range set1 {
		if set2[tok] {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize(text) {
		if !stopWords[tok] {
			set[tok] = true
		}
	}
	return set
}
