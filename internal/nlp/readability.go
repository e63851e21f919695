package nlp

import "strings"

// Readability carries the Flesch metrics for a text.
type Readability struct {
	FleschScore        float64 `json:"flesch_score"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	Level              string  `json:"readability_level"`
	SentenceCount      int     `json:"sentence_count"`
	WordCount          int     `json:"word_count"`
	SyllableCount      int     `json:"syllable_count"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	AvgWordLength      float64 `json:"avg_word_length"`
	ComplexWords       int     `json:"complex_words"`
}

const vowels = "aeiouy"

// countSyllables estimates syllables as vowel clusters; words of up to
// three characters count as one.
func countSyllables(word string) int {
	w := strings.ToLower(word)
	if len(w) <= 3 {
		return 1
	}
	return vowelClusters(w)
}

func vowelClusters(w string) int {
	count := 0
	prevVowel := false
	for _, c := range w {
		isVowel := strings.ContainsRune(vowels, c)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count == 0 {
		count = 1
	}
	return count
}

// analyzeReadability computes Flesch Reading Ease, the Flesch-Kincaid
// grade and a seven-level bucket.
func analyzeReadability(text string) Readability {
	sentences := splitSentences(text)
	words := tokenize(text)

	syllables := 0
	totalLen := 0
	complexWords := 0
	for _, w := range words {
		syllables += countSyllables(w)
		totalLen += len(w)
		if vowelClusters(w) > 3 {
			complexWords++
		}
	}

	r := Readability{
		SentenceCount: len(sentences),
		WordCount:     len(words),
		SyllableCount: syllables,
		Level:         "unknown",
		ComplexWords:  complexWords,
	}
	if len(words) > 0 {
		r.AvgWordLength = float64(totalLen) / float64(len(words))
	}
	r.AvgSentenceLength = float64(len(words)) / float64(maxInt(len(sentences), 1))

	if len(sentences) > 0 && len(words) > 0 {
		wordsPerSentence := float64(len(words)) / float64(len(sentences))
		syllablesPerWord := float64(syllables) / float64(len(words))
		r.FleschScore = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
		r.FleschKincaidGrade = 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
		r.Level = fleschLevel(r.FleschScore)
	}
	return r
}

func fleschLevel(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}
