package service

import (
	"fmt"

	"agriadvisor/internal/modules/intent"
	"agriadvisor/internal/modules/knowledge"
	"agriadvisor/internal/modules/lexicon"
	"agriadvisor/internal/modules/recommend"
	"agriadvisor/internal/modules/response"
)

// Engine bundles the pure advisory components. All fields are read-only
// after LoadEngine and may be shared between goroutines.
type Engine struct {
	Classifier *intent.Classifier
	Responder  *response.Generator
	Knowledge  *knowledge.Overlay
	Merger     *recommend.Merger
}

// LoadEngine parses the embedded lexicon, reply table and crop overlay.
func LoadEngine() (Engine, error) {
	lex, err := lexicon.Load()
	if err != nil {
		return Engine{}, fmt.Errorf("load lexicon: %w", err)
	}
	table, err := response.Load()
	if err != nil {
		return Engine{}, fmt.Errorf("load reply table: %w", err)
	}
	kb, err := knowledge.Load()
	if err != nil {
		return Engine{}, fmt.Errorf("load crop overlay: %w", err)
	}
	return Engine{
		Classifier: intent.NewClassifier(lex),
		Responder:  response.NewGenerator(table),
		Knowledge:  kb,
		Merger:     recommend.NewMerger(kb),
	}, nil
}
