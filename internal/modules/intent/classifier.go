// README: Keyword classifier mapping a query and language to one Topic.
package intent

import (
	"strings"

	"agriadvisor/internal/modules/lexicon"
	"agriadvisor/internal/types"
)

// priority is the fixed resolution order; the first group hit wins.
var priority = []struct {
	group lexicon.Group
	topic Topic
}{
	{lexicon.Greeting, Greeting},
	{lexicon.Thanks, Thanks},
	{lexicon.Fertilizer, Fertilizer},
	{lexicon.Soil, Soil},
	{lexicon.Irrigation, Irrigation},
}

// Classifier is stateless apart from the shared read-only lexicon.
type Classifier struct {
	lex *lexicon.Lexicon
}

// NewClassifier returns a Classifier over lex.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

// Classify never fails. Blank text is General; an unknown language uses
// the base keyword set.
func (c *Classifier) Classify(text string, lang types.Language) Topic {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return General
	}
	for _, p := range priority {
		if lexicon.ContainsAny(lower, c.lex.Triggers(lang, p.group)) {
			return p.topic
		}
	}
	return General
}
