// README: Loads and validates the embedded reply table.
package response

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"agriadvisor/internal/modules/intent"
	"agriadvisor/internal/modules/lexicon"
	"agriadvisor/internal/types"
)

//go:embed templates.yaml
var embedded []byte

// Load parses the compiled-in reply table.
func Load() (*Table, error) {
	return Parse(embedded)
}

// Parse decodes and validates a reply table document.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("response: parse: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	for _, tr := range t.Topics {
		for i := range tr.Probes {
			lowerAll(tr.Probes[i].Any)
			lowerAll(tr.Probes[i].With)
		}
	}
	return &t, nil
}

func lowerAll(ts []lexicon.Trigger) {
	for i := range ts {
		ts[i].Text = strings.ToLower(strings.TrimSpace(ts[i].Text))
	}
}

func (t *Table) validate() error {
	if !t.LocationNote.Complete() {
		return fmt.Errorf("%w: location_note", ErrIncomplete)
	}
	if !strings.Contains(t.LocationNote.EN, "{location}") || !strings.Contains(t.LocationNote.TE, "{location}") {
		return ErrBadLocationNote
	}
	for _, topic := range intent.Topics {
		tr, ok := t.Topics[topic]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingTopic, topic)
		}
		if err := checkTemplate(tr.Default, string(topic)+"/"+DefaultSubtopic); err != nil {
			return err
		}
		seen := map[string]bool{DefaultSubtopic: true}
		for _, p := range tr.Probes {
			where := string(topic) + "/" + p.Name
			if p.Name == "" || seen[p.Name] {
				return fmt.Errorf("%w: %s", ErrDuplicateProbe, where)
			}
			seen[p.Name] = true
			if len(p.Any) == 0 {
				return fmt.Errorf("%w: %s", ErrEmptyProbe, where)
			}
			if err := checkTemplate(p.Reply, where); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkTemplate(tpl Template, where string) error {
	if !tpl.Text.Complete() {
		return fmt.Errorf("%w: %s", ErrIncomplete, where)
	}
	if tpl.Named != (types.BilingualText{}) && !tpl.Named.Complete() {
		return fmt.Errorf("%w: %s (named)", ErrIncomplete, where)
	}
	return nil
}

// Template returns the reply for (topic, subtopic). Use DefaultSubtopic for
// the topic fallback.
func (t *Table) Template(topic intent.Topic, subtopic string) (Template, bool) {
	tr, ok := t.Topics[topic]
	if !ok {
		return Template{}, false
	}
	if subtopic == DefaultSubtopic {
		return tr.Default, true
	}
	for _, p := range tr.Probes {
		if p.Name == subtopic {
			return p.Reply, true
		}
	}
	return Template{}, false
}

// Subtopics lists probe names for topic in priority order.
func (t *Table) Subtopics(topic intent.Topic) []string {
	var names []string
	for _, p := range t.Topics[topic].Probes {
		names = append(names, p.Name)
	}
	return names
}
