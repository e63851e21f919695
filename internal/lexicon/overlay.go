package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type overlayFile struct {
	Technologies []overlayEntry `yaml:"technologies"`
}

type overlayEntry struct {
	Name       string   `yaml:"name"`
	Category   string   `yaml:"category"`
	Aliases    []string `yaml:"aliases"`
	Popularity *float64 `yaml:"popularity"`
	Outdated   bool     `yaml:"outdated"`
}

// LoadOverlay merges additional entries from a YAML file into the lexicon.
// Entries with a known name replace the built-in definition. Call during
// startup, before the lexicon is shared with readers.
func (lx *Lexicon) LoadOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lexicon overlay: %w", err)
	}
	var file overlayFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse lexicon overlay: %w", err)
	}
	for _, e := range file.Technologies {
		if e.Name == "" || e.Category == "" {
			return fmt.Errorf("lexicon overlay entry missing name or category")
		}
		pop := 0.5
		if e.Popularity != nil {
			pop = *e.Popularity
		}
		if pop < 0 || pop > 1 {
			return fmt.Errorf("lexicon overlay entry %q: popularity %v outside [0,1]", e.Name, pop)
		}
		lx.add(TechEntry{
			Name:       e.Name,
			Category:   e.Category,
			Aliases:    e.Aliases,
			Popularity: pop,
			Outdated:   e.Outdated || outdatedTech[e.Name],
		})
	}
	lx.rebuild()
	return nil
}
