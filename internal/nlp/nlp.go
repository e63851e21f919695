// Package nlp provides lexicon-driven text analysis: lexical statistics,
// keyword extraction, sentiment, entities, topics, readability and short
// extractive summaries.
package nlp

import (
	"regexp"
	"sort"
	"strings"
)

// WordCount is one entry of a frequency ranking.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// BasicStats summarizes token-level structure of a text.
type BasicStats struct {
	SentenceCount     int            `json:"sentence_count"`
	WordCount         int            `json:"word_count"`
	UniqueWordCount   int            `json:"unique_word_count"`
	AvgSentenceLength float64        `json:"avg_sentence_length"`
	AvgWordLength     float64        `json:"avg_word_length"`
	LexicalDiversity  float64        `json:"lexical_diversity"`
	TopWords          []WordCount    `json:"top_words"`
	POSDistribution   map[string]int `json:"pos_distribution"`
	FilteredWordCount int            `json:"filtered_word_count"`
}

// KeywordAnalysis counts dictionary hits per category.
type KeywordAnalysis struct {
	Categories      map[string]int      `json:"categories"`
	CategoryWeights map[string]float64  `json:"category_weights"`
	CategoryWords   map[string][]string `json:"category_words"`
	TopNouns        []WordCount         `json:"top_nouns"`
	TotalKeywords   int                 `json:"total_keywords"`
}

// Sentiment is the lexicon-based polarity result.
type Sentiment struct {
	Score          float64  `json:"score"`
	Label          string   `json:"label"`
	Intensity      float64  `json:"intensity"`
	SentimentWords []string `json:"sentiment_words"`
	WordCount      int      `json:"sentiment_word_count"`
}

// TopicAnalysis scores the text against the fixed topic keyword sets.
type TopicAnalysis struct {
	Count          int                `json:"count"`
	Scores         map[string]int     `json:"scores"`
	Distribution   map[string]float64 `json:"distribution"`
	MainTopic      string             `json:"main_topic"`
	MainTopicScore int                `json:"main_topic_score"`
}

// Analysis is the full analyzer output for one text.
type Analysis struct {
	Basic       BasicStats      `json:"basic"`
	Keywords    KeywordAnalysis `json:"keywords"`
	Sentiment   Sentiment       `json:"sentiment"`
	Entities    EntityAnalysis  `json:"entities"`
	Topics      TopicAnalysis   `json:"topics"`
	Readability Readability     `json:"readability"`
	Summary     string          `json:"summary"`
	TextLength  int             `json:"text_length"`
}

// Analyzer runs the text pipeline. Its lexicons are fixed at construction,
// so one instance serves concurrent callers.
type Analyzer struct {
	sentiment map[string]float64
}

// NewAnalyzer builds an analyzer with the built-in lexicons.
func NewAnalyzer() *Analyzer {
	return &Analyzer{sentiment: buildSentimentLexicon()}
}

var (
	tokenRe    = regexp.MustCompile(`\w+`)
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Analyze runs the full pipeline. Empty or whitespace-only text yields a
// neutral zero-valued result instead of an error.
func (a *Analyzer) Analyze(text string) Analysis {
	text = strings.TrimSpace(text)
	if text == "" {
		return Analysis{
			Sentiment:   Sentiment{Label: "neutral"},
			Topics:      TopicAnalysis{MainTopic: "general"},
			Readability: Readability{Level: "unknown"},
		}
	}

	return Analysis{
		Basic:       a.basicStats(text),
		Keywords:    a.keywords(text),
		Sentiment:   a.analyzeSentiment(text),
		Entities:    extractEntities(text),
		Topics:      analyzeTopics(text),
		Readability: analyzeReadability(text),
		Summary:     Summarize(text, 3),
		TextLength:  len(text),
	}
}

func (a *Analyzer) basicStats(text string) BasicStats {
	sentences := splitSentences(text)
	words := tokenize(text)

	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if !stopWords[w] {
			filtered = append(filtered, lemmatize(w))
		}
	}

	unique := make(map[string]int)
	for _, w := range filtered {
		unique[w]++
	}

	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLen := 0.0
	if len(words) > 0 {
		avgWordLen = float64(totalLen) / float64(len(words))
	}

	posDist := make(map[string]int)
	for _, w := range filtered {
		posDist[tagPOS(w)]++
	}

	return BasicStats{
		SentenceCount:     len(sentences),
		WordCount:         len(words),
		UniqueWordCount:   len(unique),
		AvgSentenceLength: float64(len(words)) / float64(maxInt(len(sentences), 1)),
		AvgWordLength:     avgWordLen,
		LexicalDiversity:  float64(len(unique)) / float64(maxInt(len(filtered), 1)),
		TopWords:          topCounts(unique, 20),
		POSDistribution:   posDist,
		FilteredWordCount: len(filtered),
	}
}

func (a *Analyzer) keywords(text string) KeywordAnalysis {
	lower := strings.ToLower(text)

	counts := make(map[string]int, len(keywordCategories))
	words := make(map[string][]string, len(keywordCategories))
	total := 0
	for _, category := range keywordCategoryOrder {
		var found []string
		for _, kw := range keywordCategories[category] {
			if strings.Contains(lower, kw) {
				found = append(found, kw)
			}
		}
		counts[category] = len(found)
		words[category] = found
		total += len(found)
	}

	weights := make(map[string]float64)
	if total > 0 {
		for category, count := range counts {
			weights[category] = float64(count) / float64(total)
		}
	}

	nouns := make(map[string]int)
	for _, w := range tokenize(text) {
		if !stopWords[w] && tagPOS(w) == "noun" {
			nouns[w]++
		}
	}

	return KeywordAnalysis{
		Categories:      counts,
		CategoryWeights: weights,
		CategoryWords:   words,
		TopNouns:        topCounts(nouns, 10),
		TotalKeywords:   total,
	}
}

// analyzeSentiment sums lexicon polarities and normalizes by total word
// count; labels flip outside the +-0.1 neutral band.
func (a *Analyzer) analyzeSentiment(text string) Sentiment {
	words := tokenize(text)

	score := 0.0
	var hits []string
	for _, w := range words {
		if v, ok := a.sentiment[w]; ok {
			score += v
			hits = append(hits, w)
		}
	}

	normalized := 0.0
	if len(words) > 0 {
		normalized = score / float64(len(words))
	}

	label := "neutral"
	if normalized > 0.1 {
		label = "positive"
	} else if normalized < -0.1 {
		label = "negative"
	}

	return Sentiment{
		Score:          normalized,
		Label:          label,
		Intensity:      absFloat(normalized),
		SentimentWords: hits,
		WordCount:      len(hits),
	}
}

func analyzeTopics(text string) TopicAnalysis {
	lower := strings.ToLower(text)

	scores := make(map[string]int, len(topicKeywords))
	total := 0
	for _, topic := range topicOrder {
		score := 0
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		scores[topic] = score
		total += score
	}

	mainTopic := "general"
	mainScore := 0
	for _, topic := range topicOrder {
		if scores[topic] > mainScore {
			mainTopic = topic
			mainScore = scores[topic]
		}
	}

	distribution := make(map[string]float64)
	if total > 0 {
		for topic, score := range scores {
			distribution[topic] = float64(score) / float64(total)
		}
	}

	return TopicAnalysis{
		Count:          len(scores),
		Scores:         scores,
		Distribution:   distribution,
		MainTopic:      mainTopic,
		MainTopicScore: mainScore,
	}
}

// Summarize keeps the whole text up to maxSentences, otherwise the leading
// half plus one and the trailing half of that many sentences.
func Summarize(text string, maxSentences int) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}
	head := sentences[:maxSentences/2+1]
	tail := sentences[len(sentences)-maxSentences/2:]
	return strings.Join(append(append([]string{}, head...), tail...), " ")
}

func topCounts(freq map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(freq))
	for w, c := range freq {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// lemmatize applies light plural stripping, enough to fold common noun
// forms together for frequency counting.
func lemmatize(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 4 && strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case len(word) > 4 && (strings.HasSuffix(word, "xes") || strings.HasSuffix(word, "ches") ||
		strings.HasSuffix(word, "shes") || strings.HasSuffix(word, "zes")):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss") || strings.HasSuffix(word, "us") || strings.HasSuffix(word, "is"):
		return word
	case len(word) > 3 && strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	default:
		return word
	}
}

var digitsRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// tagPOS assigns a coarse part-of-speech class from surface form.
func tagPOS(word string) string {
	switch {
	case digitsRe.MatchString(word):
		return "number"
	case strings.HasSuffix(word, "ly"):
		return "adverb"
	case strings.HasSuffix(word, "ing") || strings.HasSuffix(word, "ed") ||
		strings.HasSuffix(word, "ize") || strings.HasSuffix(word, "ise"):
		return "verb"
	case strings.HasSuffix(word, "ous") || strings.HasSuffix(word, "ful") ||
		strings.HasSuffix(word, "ive") || strings.HasSuffix(word, "able") ||
		strings.HasSuffix(word, "ible") || strings.HasSuffix(word, "ic") ||
		strings.HasSuffix(word, "al"):
		return "adjective"
	default:
		return "noun"
	}
}

// Info reports the analyzer configuration for diagnostics endpoints.
func (a *Analyzer) Info() map[string]any {
	return map[string]any{
		"version":                "1.0.0",
		"model_type":             "NLP Processor",
		"keyword_categories":     len(keywordCategories),
		"sentiment_lexicon_size": len(a.sentiment),
		"stop_words_size":        len(stopWords),
		"is_loaded":              true,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
