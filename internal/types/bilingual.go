// README: Shared language tag and bilingual text value objects used across modules.
package types

import "strings"

// Language is a supported response language.
type Language string

const (
	English Language = "en"
	Telugu  Language = "te"
)

// BaseLanguage is used whenever a tag cannot be resolved.
const BaseLanguage = English

// Languages lists every supported language in display order.
var Languages = []Language{English, Telugu}

// ParseLanguage maps a client tag such as "te", "TE" or "te-IN" onto a
// supported language. ok is false for empty or unsupported tags.
func ParseLanguage(tag string) (Language, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	switch Language(tag) {
	case English:
		return English, true
	case Telugu:
		return Telugu, true
	}
	return "", false
}

// BilingualText carries one advisory string in every supported language.
type BilingualText struct {
	EN string `json:"en" yaml:"en"`
	TE string `json:"te" yaml:"te"`
}

// Same returns a BilingualText with s in both languages (numbers, product codes).
func Same(s string) BilingualText {
	return BilingualText{EN: s, TE: s}
}

// Get returns the text for lang, falling back to English for unknown tags.
func (b BilingualText) Get(lang Language) string {
	if lang == Telugu {
		return b.TE
	}
	return b.EN
}

// Complete reports whether both languages are populated.
func (b BilingualText) Complete() bool {
	return strings.TrimSpace(b.EN) != "" && strings.TrimSpace(b.TE) != ""
}

// Append concatenates other onto b per language.
func (b BilingualText) Append(other BilingualText) BilingualText {
	return BilingualText{EN: b.EN + other.EN, TE: b.TE + other.TE}
}

// Replace substitutes each placeholder key in both languages. vals maps
// placeholder to its per-language value.
func (b BilingualText) Replace(vals map[string]BilingualText) BilingualText {
	out := b
	for k, v := range vals {
		out.EN = strings.ReplaceAll(out.EN, k, v.EN)
		out.TE = strings.ReplaceAll(out.TE, k, v.TE)
	}
	return out
}
