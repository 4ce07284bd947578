// README: Stateless reply selection from (topic, sub-topic hits, language).
package response

import (
	"strings"

	"agriadvisor/internal/modules/intent"
	"agriadvisor/internal/modules/lexicon"
	"agriadvisor/internal/types"
)

// Generator selects replies from a Table. Safe for concurrent use.
type Generator struct {
	table *Table
}

// NewGenerator returns a Generator over table.
func NewGenerator(table *Table) *Generator {
	return &Generator{table: table}
}

// Subtopic returns the first matching probe name for topic, or DefaultSubtopic.
func (g *Generator) Subtopic(topic intent.Topic, text string) string {
	lower := strings.ToLower(text)
	for _, p := range g.table.Topics[topic].Probes {
		if !lexicon.ContainsAny(lower, p.Any) {
			continue
		}
		if len(p.With) > 0 && !lexicon.ContainsAny(lower, p.With) {
			continue
		}
		return p.Name
	}
	return DefaultSubtopic
}

// Respond returns the language-selected reply. name is interpolated for
// greeting, thanks and general replies; location only for general.
func (g *Generator) Respond(topic intent.Topic, text string, lang types.Language, name, location string) string {
	if _, ok := g.table.Topics[topic]; !ok {
		topic = intent.General
	}
	tpl, _ := g.table.Template(topic, g.Subtopic(topic, text))

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)

	out := tpl.Text
	if name != "" && tpl.Named != (types.BilingualText{}) {
		out = tpl.Named.Replace(map[string]types.BilingualText{"{name}": types.Same(name)})
	}
	if topic == intent.General && location != "" {
		out = out.Append(g.table.LocationNote.Replace(map[string]types.BilingualText{"{location}": types.Same(location)}))
	}
	return out.Get(lang)
}
