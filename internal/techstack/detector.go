// Package techstack detects technologies mentioned in a project record and
// derives stack-level analysis from the lexicon annotations.
package techstack

import (
	"regexp"
	"sort"
	"strings"

	"github.com/veridex/projectmeter/internal/lexicon"
	"github.com/veridex/projectmeter/internal/project"
)

// TechDetail annotates one detected technology.
type TechDetail struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Popularity float64  `json:"popularity_score"`
	Aliases    []string `json:"aliases"`
	Outdated   bool     `json:"is_outdated"`
}

// StackAnalysis holds the derived stack metrics.
type StackAnalysis struct {
	Diversity            float64        `json:"diversity"`
	Maturity             float64        `json:"maturity"`
	Complexity           float64        `json:"complexity"`
	Cohesion             float64        `json:"cohesion"`
	CategoryDistribution map[string]int `json:"category_distribution,omitempty"`
}

// Detection is the full detector output for one record. Technologies is
// deduplicated and canonically sorted, so identical records always produce
// identical detections.
type Detection struct {
	Technologies    []string            `json:"detected_tech"`
	Details         []TechDetail        `json:"tech_details"`
	Analysis        StackAnalysis       `json:"analysis"`
	Categories      map[string][]string `json:"tech_categories"`
	Confidence      float64             `json:"confidence"`
	Recommendations []string            `json:"recommendations"`
}

// Detector scans project records against an immutable lexicon.
type Detector struct {
	lexicon *lexicon.Lexicon
}

// NewDetector returns a detector over the given lexicon.
func NewDetector(lx *lexicon.Lexicon) *Detector {
	return &Detector{lexicon: lx}
}

var wordRe = regexp.MustCompile(`\b\w+\b`)

// Detect finds and normalizes every technology mention in the record.
// Sources in priority order: the explicit tech_stack list, the name, the
// description, then every string metadata value.
func (d *Detector) Detect(rec project.Record) Detection {
	exact := make(map[string]bool)

	for _, raw := range rec.TechStack {
		if name, ok := d.lexicon.Resolve(raw); ok {
			token := strings.ToLower(strings.TrimSpace(raw))
			exact[name] = exact[name] || token == name
		}
	}
	d.scanText(rec.Name, exact)
	d.scanText(rec.Description, exact)
	for _, value := range rec.StringMetadata() {
		d.scanText(value, exact)
	}

	detected := make([]string, 0, len(exact))
	for name := range exact {
		detected = append(detected, name)
	}
	sort.Strings(detected)

	analysis := d.analyze(detected)
	return Detection{
		Technologies:    detected,
		Details:         d.details(detected),
		Analysis:        analysis,
		Categories:      d.categorize(detected),
		Confidence:      d.confidence(detected, exact, rec),
		Recommendations: d.recommendations(detected, analysis),
	}
}

// scanText runs single- and two-word windows over the text through the
// normalizer, recording whether each hit came from an exact token.
func (d *Detector) scanText(text string, exact map[string]bool) {
	if text == "" {
		return
	}
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	for i, w := range words {
		if name, ok := d.lexicon.Resolve(w); ok {
			exact[name] = exact[name] || w == name
		}
		if i < len(words)-1 {
			pair := w + " " + words[i+1]
			if name, ok := d.lexicon.Resolve(pair); ok {
				exact[name] = exact[name] || pair == name
			}
		}
	}
}

func (d *Detector) details(detected []string) []TechDetail {
	details := make([]TechDetail, 0, len(detected))
	for _, name := range detected {
		entry, _ := d.lexicon.Entry(name)
		details = append(details, TechDetail{
			Name:       name,
			Category:   d.lexicon.Category(name),
			Popularity: d.lexicon.Popularity(name),
			Aliases:    entry.Aliases,
			Outdated:   d.lexicon.IsOutdated(name),
		})
	}
	// most popular first, name break keeps the order reproducible
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].Popularity != details[j].Popularity {
			return details[i].Popularity > details[j].Popularity
		}
		return details[i].Name < details[j].Name
	})
	return details
}

func (d *Detector) categorize(detected []string) map[string][]string {
	categories := make(map[string][]string)
	for _, name := range detected {
		cat := d.lexicon.Category(name)
		if cat == "unknown" {
			cat = "other"
		}
		categories[cat] = append(categories[cat], name)
	}
	return categories
}

// confidence: +0.4 for an explicit stack, +0.1 per detected tech capped at
// +0.3, +0.2 for a description over 100 characters, +0.1 scaled by the
// fraction of technologies whose source token matched a canonical name
// exactly. Capped at 1.0.
func (d *Detector) confidence(detected []string, exact map[string]bool, rec project.Record) float64 {
	confidence := 0.0
	if len(rec.TechStack) > 0 {
		confidence += 0.4
	}
	if n := len(detected); n > 0 {
		confidence += minFloat(float64(n)*0.1, 0.3)
	}
	if len(rec.Description) > 100 {
		confidence += 0.2
	}
	if len(detected) > 0 {
		exactCount := 0
		for _, name := range detected {
			if exact[name] {
				exactCount++
			}
		}
		confidence += float64(exactCount) / float64(len(detected)) * 0.1
	}
	return minFloat(confidence, 1.0)
}

// Outdated returns the detected technologies on the deny-list, in order.
func (d *Detector) Outdated(detected []string) []string {
	var out []string
	for _, name := range detected {
		if d.lexicon.IsOutdated(name) {
			out = append(out, name)
		}
	}
	return out
}

// ModelInfo describes the loaded detector for diagnostics endpoints.
type ModelInfo struct {
	Version       string `json:"version"`
	TechCount     int    `json:"tech_count"`
	CategoryCount int    `json:"category_count"`
	ModelType     string `json:"model_type"`
	Loaded        bool   `json:"is_loaded"`
}

// Info reports the lexicon-backed detector state.
func (d *Detector) Info() ModelInfo {
	return ModelInfo{
		Version:       "1.0.0",
		TechCount:     d.lexicon.Len(),
		CategoryCount: d.lexicon.CategoryCount(),
		ModelType:     "Tech Stack Analyzer",
		Loaded:        d.lexicon.Len() > 0,
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
