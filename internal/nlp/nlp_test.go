package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_AnalyzeEmptyText(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			assert.Zero(t, got.Basic.WordCount)
			assert.Zero(t, got.Basic.SentenceCount)
			assert.Equal(t, "neutral", got.Sentiment.Label)
			assert.Equal(t, "general", got.Topics.MainTopic)
			assert.Equal(t, "unknown", got.Readability.Level)
			assert.Empty(t, got.Summary)
		})
	}
}

func TestAnalyzer_BasicStats(t *testing.T) {
	a := NewAnalyzer()

	got := a.Analyze("The team builds tools. The tools build projects.")

	assert.Equal(t, 2, got.Basic.SentenceCount)
	assert.Equal(t, 8, got.Basic.WordCount)
	assert.Equal(t, 4.0, got.Basic.AvgSentenceLength)
	// stop words removed, plurals folded: team, build(s), tool(s), tool(s), build, project(s)
	assert.Equal(t, 6, got.Basic.FilteredWordCount)
	assert.Equal(t, 4, got.Basic.UniqueWordCount)
	require.NotEmpty(t, got.Basic.TopWords)
	assert.Equal(t, 2, got.Basic.TopWords[0].Count)
}

func TestAnalyzer_Sentiment(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name      string
		text      string
		wantLabel string
	}{
		{name: "positive heavy text", text: "good fast reliable", wantLabel: "positive"},
		{name: "negative heavy text", text: "a buggy broken slow mess", wantLabel: "negative"},
		{name: "neutral text", text: "the service stores records in a queue", wantLabel: "neutral"},
		{name: "sparse polarity stays neutral", text: "one good word hides in a very long and otherwise plain sentence about nothing in particular today", wantLabel: "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			assert.Equal(t, tt.wantLabel, got.Sentiment.Label)
			assert.Equal(t, absFloat(got.Sentiment.Score), got.Sentiment.Intensity)
			assert.GreaterOrEqual(t, got.Sentiment.Score, -1.0)
			assert.LessOrEqual(t, got.Sentiment.Score, 1.0)
		})
	}
}

func TestAnalyzer_Keywords(t *testing.T) {
	a := NewAnalyzer()

	got := a.Analyze("A scalable software platform with tested code.")

	assert.Equal(t, 2, got.Keywords.Categories["technology"])
	assert.Equal(t, 2, got.Keywords.Categories["development"])
	assert.Equal(t, 2, got.Keywords.Categories["quality"])
	assert.Equal(t, 0, got.Keywords.Categories["innovation"])
	assert.Equal(t, 6, got.Keywords.TotalKeywords)
	assert.ElementsMatch(t, []string{"software", "platform"}, got.Keywords.CategoryWords["technology"])
	assert.InDelta(t, 1.0/3.0, got.Keywords.CategoryWeights["quality"], 1e-9)
}

func TestAnalyzeTopics(t *testing.T) {
	got := analyzeTopics("We develop and build software systems for business growth.")

	assert.Equal(t, 2, got.Scores["technology"])
	assert.Equal(t, 2, got.Scores["development"])
	assert.Equal(t, 1, got.Scores["business"])
	// scores tie between technology and development; fixed order wins
	assert.Equal(t, "technology", got.MainTopic)
	assert.Equal(t, 2, got.MainTopicScore)
	assert.InDelta(t, 0.4, got.Distribution["technology"], 1e-9)

	plain := analyzeTopics("nothing relevant here")
	assert.Equal(t, "general", plain.MainTopic)
	assert.Empty(t, plain.Distribution)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text kept whole",
			text: "First one. Second one. Third one.",
			want: "First one. Second one. Third one.",
		},
		{
			name: "long text keeps head and tail",
			text: "First one. Second one. Third one. Fourth one. Fifth one.",
			want: "First one. Second one. Fifth one.",
		},
		{
			name: "no terminal punctuation",
			text: "a single fragment",
			want: "a single fragment",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.text, 3))
		})
	}
}

func TestLemmatize(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{word: "libraries", want: "library"},
		{word: "classes", want: "class"},
		{word: "boxes", want: "box"},
		{word: "patches", want: "patch"},
		{word: "tools", want: "tool"},
		{word: "analysis", want: "analysis"},
		{word: "status", want: "status"},
		{word: "class", want: "class"},
		{word: "api", want: "api"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, lemmatize(tt.word))
		})
	}
}

func TestAnalyzer_Info(t *testing.T) {
	a := NewAnalyzer()

	info := a.Info()
	assert.Equal(t, 5, info["keyword_categories"])
	assert.Equal(t, 40, info["sentiment_lexicon_size"])
	assert.Equal(t, true, info["is_loaded"])
}
