package nlp

// keywordCategories drives keyword extraction. Matching is by substring
// over the lowercased text, so hyphenated terms match regardless of
// tokenization.
var keywordCategories = map[string][]string{
	"technology": {
		"software", "application", "system", "platform", "solution",
		"framework", "library", "tool", "api", "sdk", "interface",
		"database", "server", "client", "network", "protocol",
	},
	"development": {
		"develop", "build", "create", "implement", "design",
		"code", "program", "script", "test", "debug", "deploy",
		"maintain", "update", "refactor", "optimize", "integrate",
	},
	"business": {
		"business", "market", "product", "service", "customer",
		"user", "client", "revenue", "profit", "growth", "scale",
		"competitive", "strategy", "plan", "goal", "objective",
	},
	"quality": {
		"quality", "reliable", "stable", "secure", "efficient",
		"performant", "scalable", "maintainable", "readable",
		"documented", "tested", "robust", "resilient", "fault-tolerant",
	},
	"innovation": {
		"innovative", "novel", "unique", "advanced", "cutting-edge",
		"state-of-art", "revolutionary", "disruptive", "breakthrough",
		"creative", "original", "pioneering", "groundbreaking",
	},
}

// keywordCategoryOrder fixes iteration order for deterministic output.
var keywordCategoryOrder = []string{"technology", "development", "business", "quality", "innovation"}

// topicKeywords backs the lightweight topic classification.
var topicKeywords = map[string][]string{
	"technology":  {"software", "application", "system", "code", "program"},
	"business":    {"business", "market", "product", "revenue", "profit"},
	"development": {"develop", "build", "create", "implement", "design"},
	"quality":     {"quality", "reliable", "secure", "efficient", "test"},
	"innovation":  {"innovative", "novel", "unique", "advanced", "cutting-edge"},
}

// topicOrder breaks main-topic ties deterministically.
var topicOrder = []string{"technology", "business", "development", "quality", "innovation"}

var positiveWords = []string{
	"good", "great", "excellent", "awesome", "amazing",
	"best", "perfect", "wonderful", "outstanding", "superb",
	"innovative", "creative", "efficient", "reliable", "secure",
	"fast", "easy", "simple", "powerful", "flexible",
}

var negativeWords = []string{
	"bad", "poor", "terrible", "awful", "horrible",
	"worst", "slow", "difficult", "complex", "hard",
	"buggy", "unstable", "insecure", "outdated", "limited",
	"broken", "failed", "error", "issue", "problem",
}

func buildSentimentLexicon() map[string]float64 {
	lex := make(map[string]float64, len(positiveWords)+len(negativeWords))
	for _, w := range positiveWords {
		lex[w] = 1.0
	}
	for _, w := range negativeWords {
		lex[w] = -1.0
	}
	return lex
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "it": true, "its": true, "this": true, "that": true,
	"these": true, "those": true, "as": true, "from": true, "has": true,
	"have": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "can": true, "could": true, "should": true,
	"not": true, "no": true, "so": true, "if": true, "then": true,
	"than": true, "too": true, "very": true, "we": true, "our": true,
	"you": true, "your": true, "they": true, "their": true, "he": true,
	"she": true, "his": true, "her": true, "i": true, "my": true,
}
