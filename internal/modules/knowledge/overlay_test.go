package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriadvisor/internal/types"
)

func load(t *testing.T) *Overlay {
	t.Helper()
	o, err := Load()
	require.NoError(t, err)
	return o
}

func TestLookupCoversCuratedCrops(t *testing.T) {
	o := load(t)
	want := []string{
		"apple", "banana", "brinjal", "cabbage", "cauliflower", "chickpea", "chilli", "cotton",
		"grapes", "groundnut", "maize", "mango", "muskmelon", "onion", "orange", "papaya",
		"pomegranate", "potato", "rice", "soybean", "sugarcane", "tomato", "watermelon", "wheat",
	}
	assert.Equal(t, want, o.Crops())

	for _, crop := range want {
		p, ok := o.Lookup(crop)
		require.True(t, ok, crop)
		assert.Equal(t, crop, p.Crop)
		assert.NotEmpty(t, p.Fertilizer)
		for _, b := range []types.BilingualText{p.Name, p.Purpose, p.Secondary,
			p.Irrigation.Method, p.Irrigation.Timing, p.Irrigation.Frequency, p.Irrigation.Tips} {
			assert.True(t, b.Complete(), "%s: %+v", crop, b)
		}
	}
}

func TestLookupCaseInsensitiveExact(t *testing.T) {
	o := load(t)

	p, ok := o.Lookup("RiCe")
	require.True(t, ok)
	assert.Equal(t, "DAP", p.Fertilizer)
	assert.NotEqual(t, "Urea", p.Fertilizer)

	_, ok = o.Lookup(" rice")
	assert.False(t, ok)
	_, ok = o.Lookup("paddy")
	assert.False(t, ok)
	_, ok = o.Lookup("Mustard")
	assert.False(t, ok)
}

func TestDefaultProfile(t *testing.T) {
	o := load(t)

	p := o.Default("Mustard", "Urea")
	assert.Equal(t, "Urea", p.Fertilizer)
	assert.Equal(t, "mustard", p.Crop)
	assert.Equal(t, "ML-recommended fertilizer for Mustard", p.Purpose.EN)
	assert.Contains(t, p.Purpose.TE, "ఆవాలు")
	assert.Equal(t, "Consult local agriculture expert for specific guidance", p.Secondary.EN)
	assert.Equal(t, "Drip or Sprinkler irrigation recommended", p.Irrigation.Method.EN)
	assert.Contains(t, p.Irrigation.Tips.EN, "Mustard")

	unknown := o.Default("Quinoa", "NPK Complex (19:19:19)")
	assert.Contains(t, unknown.Purpose.TE, "Quinoa")
	for _, b := range []types.BilingualText{unknown.Purpose, unknown.Secondary,
		unknown.Irrigation.Method, unknown.Irrigation.Timing, unknown.Irrigation.Frequency, unknown.Irrigation.Tips} {
		assert.True(t, b.Complete())
	}
}

func TestNames(t *testing.T) {
	o := load(t)
	assert.Equal(t, types.BilingualText{EN: "Rice", TE: "వరి"}, o.CropName("rice"))
	assert.Equal(t, "పెసలు", o.CropName("Mungbean").TE)
	assert.Equal(t, types.Same("Quinoa"), o.CropName(" Quinoa "))
	assert.Equal(t, "రబీ (యాసంగి)", o.SeasonName("Rabi").TE)
	assert.Equal(t, types.Same("Monsoon"), o.SeasonName("Monsoon"))
}

func TestSoilPresets(t *testing.T) {
	o := load(t)
	black, ok := o.SoilPreset("Black")
	require.True(t, ok)
	assert.Equal(t, SoilPreset{Name: types.BilingualText{EN: "Black Soil", TE: "నల్ల నేల"}, N: 45, P: 55, K: 60, PH: 7.2, Moisture: 35}, black)

	sandy, ok := o.SoilPreset("sandy")
	require.True(t, ok)
	assert.Equal(t, 15.0, sandy.Moisture)

	_, ok = o.SoilPreset("laterite")
	assert.False(t, ok)
}

func TestParseValidation(t *testing.T) {
	base := `
fallback:
  purpose: {en: "for {crop}", te: "{crop} కోసం"}
  secondary: {en: ask, te: అడగండి}
  irrigation:
    method: {en: drip, te: డ్రిప్}
    timing: {en: stages, te: దశలు}
    frequency: {en: weekly, te: వారానికి}
    tips: {en: water, te: నీరు}
moisture_notes:
  critical: {en: " low", te: " తక్కువ"}
  moderate: {en: " mid", te: " మధ్యస్థం"}
`
	_, err := Parse([]byte(base))
	require.NoError(t, err)

	_, err = Parse([]byte(base + "crops:\n  Rice:\n    fertilizer: DAP\n"))
	assert.ErrorIs(t, err, ErrNonLowerKey)

	_, err = Parse([]byte(base + "crops:\n  rice:\n    name: {en: Rice, te: వరి}\n"))
	assert.ErrorIs(t, err, ErrNoFertilizer)

	_, err = Parse([]byte(base + "crops:\n  rice:\n    name: {en: Rice}\n    fertilizer: DAP\n"))
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = Parse([]byte(base + "soil_presets:\n  red: {n: 1}\n"))
	assert.ErrorIs(t, err, ErrMissingPreset)
}
