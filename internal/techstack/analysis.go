package techstack

import (
	"fmt"
	"math"
	"strings"
)

// analyze derives the stack metrics. Diversity is the share of lexicon
// categories the stack touches, maturity the mean popularity, complexity
// saturates at ten technologies, cohesion is the mean pairwise similarity
// of the per-tech term vectors.
func (d *Detector) analyze(detected []string) StackAnalysis {
	if len(detected) == 0 {
		return StackAnalysis{}
	}

	distribution := make(map[string]int)
	for _, name := range detected {
		distribution[d.lexicon.Category(name)]++
	}

	maturity := 0.0
	for _, name := range detected {
		maturity += d.lexicon.Popularity(name)
	}
	maturity /= float64(len(detected))

	return StackAnalysis{
		Diversity:            float64(len(distribution)) / float64(maxInt(d.lexicon.CategoryCount(), 1)),
		Maturity:             maturity,
		Complexity:           minFloat(float64(len(detected))/10, 1.0),
		Cohesion:             d.cohesion(detected),
		CategoryDistribution: distribution,
	}
}

// cohesion averages cosine similarity over all tech pairs, comparing term
// frequency vectors built from each entry's name, aliases and category.
func (d *Detector) cohesion(detected []string) float64 {
	if len(detected) <= 1 {
		return 1.0
	}

	vectors := make([]map[string]float64, len(detected))
	for i, name := range detected {
		vectors[i] = termVector(d.lexicon.Terms(name))
	}

	total := 0.0
	pairs := 0
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			total += cosineSimilarity(vectors[i], vectors[j])
			pairs++
		}
	}
	return total / float64(maxInt(pairs, 1))
}

func termVector(terms []string) map[string]float64 {
	vec := make(map[string]float64)
	for _, term := range terms {
		for _, tok := range strings.Fields(strings.ToLower(term)) {
			vec[tok]++
		}
	}
	return vec
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for tok, va := range a {
		normA += va * va
		if vb, ok := b[tok]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var genericAdvice = []string{
	"Add an automated testing framework",
	"Set up a CI/CD pipeline",
	"Add monitoring and centralized logging",
	"Containerize the services, for example with Docker",
}

// recommendations produces between three and five suggestions covering
// missing essential categories, diversity extremes, outdated technologies
// and low cohesion.
func (d *Detector) recommendations(detected []string, analysis StackAnalysis) []string {
	var recs []string

	categories := d.categorize(detected)
	for _, essential := range []string{"language", "framework", "database"} {
		if _, ok := categories[essential]; ok {
			continue
		}
		switch essential {
		case "language":
			recs = append(recs, "Specify a primary programming language, such as Python or JavaScript")
		case "framework":
			recs = append(recs, "Adopt a suitable framework to speed up development")
		case "database":
			recs = append(recs, "Choose an appropriate database system")
		}
	}

	if analysis.Diversity < 0.3 {
		recs = append(recs, "The stack is narrow; consider complementary technologies")
	} else if analysis.Diversity > 0.8 {
		recs = append(recs, "The stack is very broad; consider simplifying the architecture")
	}

	if outdated := d.Outdated(detected); len(outdated) > 0 {
		recs = append(recs, fmt.Sprintf("Outdated technologies detected: %s; upgrade or replace them", strings.Join(outdated, ", ")))
	}

	if analysis.Cohesion < 0.3 {
		recs = append(recs, "Stack cohesion is low; prefer a more compatible technology combination")
	}

	if len(recs) < 3 {
		recs = append(recs, genericAdvice[:3-len(recs)]...)
	}
	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
