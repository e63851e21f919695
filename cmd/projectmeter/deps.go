package main

import (
	"fmt"
	"log/slog"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/classify"
	"github.com/veridex/projectmeter/internal/config"
	"github.com/veridex/projectmeter/internal/lexicon"
	"github.com/veridex/projectmeter/internal/scoring"
)

// buildClassifier loads the snapshot at modelPath, or trains on the builtin
// corpus when no path is set or the snapshot cannot be read.
func buildClassifier(modelPath string, log *slog.Logger) (*classify.Classifier, error) {
	if modelPath != "" {
		clf, err := classify.LoadClassifier(modelPath)
		if err == nil {
			log.Info("classifier snapshot loaded", "path", modelPath)
			return clf, nil
		}
		log.Warn("classifier snapshot unavailable, training builtin corpus",
			"path", modelPath, "error", err)
	}

	clf := classify.NewClassifier()
	if err := clf.TrainBuiltin(); err != nil {
		return nil, fmt.Errorf("training builtin classifier: %w", err)
	}
	return clf, nil
}

// buildLexicon returns the builtin lexicon, with the overlay file merged in
// when one is configured. An unreadable overlay is logged and skipped so the
// service still comes up on the builtin entries.
func buildLexicon(overlayPath string, log *slog.Logger) *lexicon.Lexicon {
	lx := lexicon.New()
	if overlayPath == "" {
		return lx
	}
	if err := lx.LoadOverlay(overlayPath); err != nil {
		log.Warn("lexicon overlay unavailable, using builtin entries only",
			"path", overlayPath, "error", err)
		return lx
	}
	log.Info("lexicon overlay loaded", "path", overlayPath, "entries", lx.Len())
	return lx
}

// buildEngine wires the full analysis pipeline and scoring engine.
func buildEngine(cfg *config.Config, log *slog.Logger) (*scoring.Engine, error) {
	clf, err := buildClassifier(cfg.ModelPath, log)
	if err != nil {
		return nil, err
	}

	actx := analysis.NewContext(buildLexicon(cfg.LexiconOverlay, log), clf)
	return scoring.NewEngine(actx, log), nil
}
