// README: Lexicon types (keyword groups, triggers) and load errors.
package lexicon

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Group names one keyword set.
type Group string

const (
	Greeting   Group = "greeting"
	Thanks     Group = "thanks"
	Soil       Group = "soil"
	Irrigation Group = "irrigation"
	Fertilizer Group = "fertilizer"
)

// Groups lists every keyword group the lexicon must define for the base language.
var Groups = []Group{Greeting, Thanks, Soil, Irrigation, Fertilizer}

var (
	ErrNoBase       = errors.New("lexicon: base language missing")
	ErrMissingGroup = errors.New("lexicon: keyword group missing")
	ErrEmptyTrigger = errors.New("lexicon: empty trigger")
)

// Trigger is one keyword. Plain triggers match as substrings. Word triggers,
// used by reply sub-probes, only match when the surrounding runes are not
// letters or digits.
type Trigger struct {
	Text string `yaml:"text"`
	Word bool   `yaml:"word"`
}

// UnmarshalYAML accepts either a bare string or a {text, word} mapping.
func (t *Trigger) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Text = node.Value
		t.Word = false
		return nil
	}
	type plain Trigger
	var p plain
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("trigger at line %d: %w", node.Line, err)
	}
	*t = Trigger(p)
	return nil
}
