// Package analysis composes the detector, feature extractor, classifier,
// topic model and NLP analyzer into one bundle per project record.
package analysis

import (
	"github.com/veridex/projectmeter/internal/classify"
	"github.com/veridex/projectmeter/internal/lexicon"
	"github.com/veridex/projectmeter/internal/nlp"
	"github.com/veridex/projectmeter/internal/techstack"
	"github.com/veridex/projectmeter/internal/textfeat"
	"github.com/veridex/projectmeter/internal/topics"
)

// Context holds every model the analysis pipeline reads. It is built once
// at startup and never mutated afterwards, so concurrent Analyze calls
// share one instance freely.
type Context struct {
	lexicon    *lexicon.Lexicon
	detector   *techstack.Detector
	extractor  *textfeat.Extractor
	classifier *classify.Classifier
	nlp        *nlp.Analyzer
	topics     *topics.Model
}

// NewContext wires detector, extractor and topic model over the lexicon
// and attaches a classifier the caller has already trained or loaded.
func NewContext(lx *lexicon.Lexicon, clf *classify.Classifier) *Context {
	model := topics.Train()
	return &Context{
		lexicon:    lx,
		detector:   techstack.NewDetector(lx),
		extractor:  textfeat.NewExtractor(lx, model),
		classifier: clf,
		nlp:        nlp.NewAnalyzer(),
		topics:     model,
	}
}

func (c *Context) Lexicon() *lexicon.Lexicon        { return c.lexicon }
func (c *Context) Detector() *techstack.Detector    { return c.detector }
func (c *Context) Extractor() *textfeat.Extractor   { return c.extractor }
func (c *Context) Classifier() *classify.Classifier { return c.classifier }
func (c *Context) NLP() *nlp.Analyzer               { return c.nlp }
func (c *Context) Topics() *topics.Model            { return c.topics }

// ModelVersions reports the version of every model in the context.
func (c *Context) ModelVersions() map[string]string {
	nlpVersion, _ := c.nlp.Info()["version"].(string)
	return map[string]string{
		"classifier":        c.classifier.Info().Version,
		"tech_analyzer":     c.detector.Info().Version,
		"feature_extractor": c.extractor.Info().Version,
		"nlp_processor":     nlpVersion,
		"topic_model":       c.topics.Info().Version,
	}
}
