package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon categories.
const (
	CategoryLanguage  = "language"
	CategoryFramework = "framework"
	CategoryDatabase  = "database"
	CategoryCloud     = "cloud"
	CategoryTool      = "tool"
)

// TechEntry is one canonical technology in the lexicon.
type TechEntry struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Aliases    []string `json:"aliases"`
	Popularity float64  `json:"popularity_score"`
	Outdated   bool     `json:"is_outdated"`
}

// Lexicon maps canonical technology names, aliases and categories.
// Instances are immutable once built and safe for concurrent readers.
type Lexicon struct {
	entries    map[string]TechEntry
	aliases    map[string]string
	categories []string
	// canonical names ordered longest-first for the containment fallback
	byLength []string
}

var (
	versionRe  = regexp.MustCompile(`[\d.]+`)
	nonWordRe  = regexp.MustCompile(`[^\w\s]`)
	spaceSplit = regexp.MustCompile(`\s+`)
)

// New builds the lexicon from the built-in technology table.
func New() *Lexicon {
	lx := &Lexicon{
		entries: make(map[string]TechEntry, len(builtinTech)),
		aliases: make(map[string]string),
	}
	for name, def := range builtinTech {
		lx.add(TechEntry{
			Name:       name,
			Category:   def.category,
			Aliases:    append([]string(nil), def.aliases...),
			Popularity: def.popularity,
			Outdated:   outdatedTech[name],
		})
	}
	lx.rebuild()
	return lx
}

func (lx *Lexicon) add(e TechEntry) {
	name := strings.ToLower(strings.TrimSpace(e.Name))
	if name == "" {
		return
	}
	e.Name = name
	lx.entries[name] = e
	lx.aliases[name] = name
	for _, alias := range e.Aliases {
		lx.aliases[strings.ToLower(alias)] = name
	}
	// acronym shorthand for multi-word names ("amazon web services" -> "aws")
	if words := strings.Fields(name); len(words) > 1 {
		var b strings.Builder
		for _, w := range words {
			b.WriteByte(w[0])
		}
		lx.aliases[b.String()] = name
	}
}

func (lx *Lexicon) rebuild() {
	seen := make(map[string]bool)
	lx.categories = lx.categories[:0]
	lx.byLength = lx.byLength[:0]
	for name, e := range lx.entries {
		lx.byLength = append(lx.byLength, name)
		if !seen[e.Category] {
			seen[e.Category] = true
			lx.categories = append(lx.categories, e.Category)
		}
	}
	sort.Strings(lx.categories)
	// longest first; ties broken lexicographically so resolution is deterministic
	sort.Slice(lx.byLength, func(i, j int) bool {
		a, b := lx.byLength[i], lx.byLength[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

// Resolve normalizes a raw technology token to its canonical name.
// Match order: exact, alias table, version/punctuation stripped, then a
// containment fallback against all canonical names where the longest
// candidate wins. Containment ignores names and tokens shorter than three
// characters, and a token embedded in a canonical name must cover at least
// half of it, so stop words like "and" cannot hit "cassandra".
func (lx *Lexicon) Resolve(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}
	if _, ok := lx.entries[t]; ok {
		return t, true
	}
	if name, ok := lx.aliases[t]; ok {
		return name, true
	}
	if clean := cleanTechName(t); clean != "" {
		if _, ok := lx.entries[clean]; ok {
			return clean, true
		}
		if name, ok := lx.aliases[clean]; ok {
			return name, true
		}
	}
	if len(t) >= 3 {
		for _, name := range lx.byLength {
			if len(name) < 3 {
				continue
			}
			if strings.Contains(t, name) {
				return name, true
			}
			if 2*len(t) >= len(name) && strings.Contains(name, t) {
				return name, true
			}
		}
	}
	return "", false
}

// cleanTechName strips version digits and punctuation ("python3.9" -> "python").
func cleanTechName(s string) string {
	out := versionRe.ReplaceAllString(s, "")
	out = nonWordRe.ReplaceAllString(out, "")
	out = strings.Join(spaceSplit.Split(strings.TrimSpace(out), -1), " ")
	return strings.TrimSpace(out)
}

// Entry returns the lexicon entry for a canonical name.
func (lx *Lexicon) Entry(name string) (TechEntry, bool) {
	e, ok := lx.entries[name]
	return e, ok
}

// Category returns the category of a canonical name, "unknown" otherwise.
func (lx *Lexicon) Category(name string) string {
	if e, ok := lx.entries[name]; ok {
		return e.Category
	}
	return "unknown"
}

// Popularity returns the popularity score of a canonical name, 0.5 when unknown.
func (lx *Lexicon) Popularity(name string) float64 {
	if e, ok := lx.entries[name]; ok {
		return e.Popularity
	}
	return 0.5
}

// IsOutdated reports whether a canonical name is on the deny-list.
func (lx *Lexicon) IsOutdated(name string) bool {
	e, ok := lx.entries[name]
	return ok && e.Outdated
}

// Terms returns the name, alias and category tokens describing an entry,
// used to build the similarity vectors behind stack cohesion.
func (lx *Lexicon) Terms(name string) []string {
	e, ok := lx.entries[name]
	if !ok {
		return []string{name}
	}
	terms := []string{e.Name}
	terms = append(terms, e.Aliases...)
	terms = append(terms, e.Category)
	return terms
}

// Len returns the number of canonical entries.
func (lx *Lexicon) Len() int { return len(lx.entries) }

// CategoryCount returns the number of distinct categories in the lexicon.
func (lx *Lexicon) CategoryCount() int { return len(lx.categories) }

// Names returns all canonical names in sorted order.
func (lx *Lexicon) Names() []string {
	names := make([]string, 0, len(lx.entries))
	for name := range lx.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
