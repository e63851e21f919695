package nlp

import (
	"regexp"
	"strings"
)

// ProjectEntity is a domain noun with its surrounding context window.
type ProjectEntity struct {
	Entity  string `json:"entity"`
	Context string `json:"context"`
}

// EntityAnalysis lists surface entities found by pattern matching.
type EntityAnalysis struct {
	Count               int             `json:"count"`
	Technologies        []string        `json:"technologies"`
	ProjectEntities     []ProjectEntity `json:"project_entities"`
	Numbers             []string        `json:"numbers"`
	URLs                []string        `json:"urls"`
	Emails              []string        `json:"emails"`
	HasTechnicalContent bool            `json:"has_technical_content"`
	HasContactInfo      bool            `json:"has_contact_info"`
}

var techEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(python|javascript|java|c\+\+|c#|go|rust|ruby|php|swift)\b`),
	regexp.MustCompile(`(?i)\b(react|vue|angular|django|flask|fastapi|express|spring|laravel)\b`),
	regexp.MustCompile(`(?i)\b(postgresql|mysql|mongodb|redis|elasticsearch|cassandra)\b`),
	regexp.MustCompile(`(?i)\b(aws|azure|google cloud|aliyun|heroku)\b`),
	regexp.MustCompile(`(?i)\b(docker|kubernetes|git|jenkins|terraform)\b`),
}

var projectEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(project|application|system|platform|solution)\b`),
	regexp.MustCompile(`(?i)\b(api|sdk|library|framework|tool)\b`),
	regexp.MustCompile(`(?i)\b(database|server|client|interface|protocol)\b`),
}

var (
	numberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	urlRe    = regexp.MustCompile(`https?://\S+`)
	emailRe  = regexp.MustCompile(`\b[\w.-]+@[\w.-]+\.\w+\b`)
)

// extractEntities scans for technology names, project nouns with a 20
// character context window on each side, numbers, URLs and emails.
func extractEntities(text string) EntityAnalysis {
	var technologies []string
	seen := make(map[string]bool)
	for _, re := range techEntityPatterns {
		for _, m := range re.FindAllString(text, -1) {
			entity := strings.ToLower(m)
			if !seen[entity] {
				seen[entity] = true
				technologies = append(technologies, entity)
			}
		}
	}

	var projectEntities []ProjectEntity
	for _, re := range projectEntityPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start := maxInt(0, loc[0]-20)
			end := loc[1] + 20
			if end > len(text) {
				end = len(text)
			}
			projectEntities = append(projectEntities, ProjectEntity{
				Entity:  strings.ToLower(text[loc[0]:loc[1]]),
				Context: strings.TrimSpace(text[start:end]),
			})
		}
	}

	numbers := numberRe.FindAllString(text, -1)
	urls := urlRe.FindAllString(text, -1)
	emails := emailRe.FindAllString(text, -1)

	return EntityAnalysis{
		Count:               len(technologies) + len(projectEntities),
		Technologies:        technologies,
		ProjectEntities:     projectEntities,
		Numbers:             numbers,
		URLs:                urls,
		Emails:              emails,
		HasTechnicalContent: len(technologies) > 0,
		HasContactInfo:      len(emails) > 0 || len(urls) > 0,
	}
}
