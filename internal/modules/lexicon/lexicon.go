// README: Embedded per-language keyword table, substring matching and script detection.
package lexicon

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"agriadvisor/internal/types"
)

//go:embed lexicon.yaml
var embedded []byte

type document struct {
	Base      types.Language                         `yaml:"base"`
	Languages map[types.Language]map[Group][]Trigger `yaml:"languages"`
}

// Lexicon is immutable after Load and safe for concurrent use.
type Lexicon struct {
	base   types.Language
	groups map[types.Language]map[Group][]Trigger
}

// Load parses the compiled-in keyword table.
func Load() (*Lexicon, error) {
	return Parse(embedded)
}

// Parse builds a Lexicon from a YAML document. Non-base languages get the
// base triggers appended to each of their groups.
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	if doc.Base == "" {
		doc.Base = types.BaseLanguage
	}

	normalized := make(map[types.Language]map[Group][]Trigger, len(doc.Languages))
	for lang, set := range doc.Languages {
		normalized[lang] = make(map[Group][]Trigger, len(Groups))
		for _, g := range Groups {
			for _, t := range set[g] {
				t.Text = strings.ToLower(strings.TrimSpace(t.Text))
				if t.Text == "" {
					return nil, fmt.Errorf("%w: %s/%s", ErrEmptyTrigger, lang, g)
				}
				normalized[lang][g] = append(normalized[lang][g], t)
			}
		}
	}

	base, ok := normalized[doc.Base]
	if !ok {
		return nil, ErrNoBase
	}
	for _, g := range Groups {
		if len(base[g]) == 0 {
			return nil, fmt.Errorf("%w: %s/%s", ErrMissingGroup, doc.Base, g)
		}
	}

	groups := make(map[types.Language]map[Group][]Trigger, len(normalized))
	for lang, set := range normalized {
		if lang == doc.Base {
			groups[lang] = set
			continue
		}
		merged := make(map[Group][]Trigger, len(Groups))
		for _, g := range Groups {
			merged[g] = append(append([]Trigger(nil), set[g]...), base[g]...)
		}
		groups[lang] = merged
	}
	return &Lexicon{base: doc.Base, groups: groups}, nil
}

// Base returns the fallback language.
func (l *Lexicon) Base() types.Language { return l.base }

// Triggers returns the keyword set for lang; unknown languages get the base set.
func (l *Lexicon) Triggers(lang types.Language, g Group) []Trigger {
	set, ok := l.groups[lang]
	if !ok {
		set = l.groups[l.base]
	}
	return set[g]
}

// Match reports whether text contains any trigger of group g for lang.
func (l *Lexicon) Match(text string, lang types.Language, g Group) bool {
	return ContainsAny(strings.ToLower(text), l.Triggers(lang, g))
}

// ContainsAny reports whether lower contains any of ts. lower must already
// be lower-cased.
func ContainsAny(lower string, ts []Trigger) bool {
	for _, t := range ts {
		if Contains(lower, t) {
			return true
		}
	}
	return false
}

// Contains tests a single trigger against lower-cased text.
func Contains(lower string, t Trigger) bool {
	if !t.Word {
		return strings.Contains(lower, t.Text)
	}
	from := 0
	for {
		i := strings.Index(lower[from:], t.Text)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(t.Text)
		if boundaryBefore(lower, start) && boundaryAfter(lower, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// Telugu block U+0C00..U+0C7F.
var telugu = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0C00, Hi: 0x0C7F, Stride: 1}}}

// DetectLanguage tags text as Telugu when any rune is in the Telugu block.
func DetectLanguage(text string) types.Language {
	for _, r := range text {
		if unicode.Is(telugu, r) {
			return types.Telugu
		}
	}
	return types.English
}

// ResolveLanguage picks the language for a request: a supported explicit
// tag wins, an empty tag falls back to script detection, anything else maps
// to the base language.
func ResolveLanguage(tag, text string) types.Language {
	if lang, ok := types.ParseLanguage(tag); ok {
		return lang
	}
	if strings.TrimSpace(tag) == "" {
		return DetectLanguage(text)
	}
	return types.BaseLanguage
}
