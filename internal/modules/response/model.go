// README: Reply table types: topic -> ordered sub-topic probes -> bilingual template.
package response

import (
	"errors"

	"agriadvisor/internal/modules/intent"
	"agriadvisor/internal/modules/lexicon"
	"agriadvisor/internal/types"
)

// DefaultSubtopic names the per-topic fallback reply.
const DefaultSubtopic = "default"

var (
	ErrMissingTopic    = errors.New("response: topic missing")
	ErrIncomplete      = errors.New("response: template missing a language")
	ErrEmptyProbe      = errors.New("response: probe has no triggers")
	ErrDuplicateProbe  = errors.New("response: duplicate probe name")
	ErrBadLocationNote = errors.New("response: location note must contain {location}")
)

// Template is one reply. Named, when set, is used instead of Text if the
// caller supplied a name.
type Template struct {
	Text  types.BilingualText `yaml:"text"`
	Named types.BilingualText `yaml:"named"`
}

// Probe selects a sub-topic reply. With, when non-empty, must also hit.
type Probe struct {
	Name  string            `yaml:"name"`
	Any   []lexicon.Trigger `yaml:"any"`
	With  []lexicon.Trigger `yaml:"with"`
	Reply Template          `yaml:"reply"`
}

// TopicReplies holds the probes for one topic in priority order.
type TopicReplies struct {
	Probes  []Probe  `yaml:"probes"`
	Default Template `yaml:"default"`
}

// Table is the full reply table. It is immutable after Load.
type Table struct {
	LocationNote types.BilingualText           `yaml:"location_note"`
	Topics       map[intent.Topic]TopicReplies `yaml:"topics"`
}
