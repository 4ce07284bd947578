package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want Language
		ok   bool
	}{
		{"en", English, true},
		{"TE", Telugu, true},
		{" te-IN ", Telugu, true},
		{"en_US", English, true},
		{"", "", false},
		{"hi", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.tag)
		assert.Equal(t, tt.ok, ok, tt.tag)
		assert.Equal(t, tt.want, got, tt.tag)
	}
}

func TestBilingualTextGet(t *testing.T) {
	b := BilingualText{EN: "soil", TE: "నేల"}
	assert.Equal(t, "soil", b.Get(English))
	assert.Equal(t, "నేల", b.Get(Telugu))
	assert.Equal(t, "soil", b.Get(Language("fr")))
}

func TestBilingualTextReplace(t *testing.T) {
	b := BilingualText{EN: "For {crop}", TE: "{crop} కోసం"}
	got := b.Replace(map[string]BilingualText{"{crop}": {EN: "Rice", TE: "వరి"}})
	assert.Equal(t, BilingualText{EN: "For Rice", TE: "వరి కోసం"}, got)
	assert.True(t, got.Complete())
	assert.False(t, BilingualText{EN: "x"}.Complete())
}
