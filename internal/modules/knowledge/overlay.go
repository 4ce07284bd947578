// README: Read-only crop knowledge table with explicit found/not-found lookup and generic fallback.
package knowledge

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"agriadvisor/internal/types"
)

//go:embed crops.yaml
var embedded []byte

const cropPlaceholder = "{crop}"

type document struct {
	Fallback      fallback                       `yaml:"fallback"`
	MoistureNotes MoistureNotes                  `yaml:"moisture_notes"`
	Crops         map[string]CropProfile         `yaml:"crops"`
	Names         map[string]types.BilingualText `yaml:"names"`
	Seasons       map[string]types.BilingualText `yaml:"seasons"`
	SoilPresets   map[string]SoilPreset          `yaml:"soil_presets"`
}

// Overlay is immutable after Load and safe for concurrent use.
type Overlay struct {
	doc document
}

// Load parses the compiled-in crop table.
func Load() (*Overlay, error) {
	return Parse(embedded)
}

// Parse decodes and validates a crop table document.
func Parse(data []byte) (*Overlay, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("knowledge: parse: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	for key, p := range doc.Crops {
		p.Crop = key
		doc.Crops[key] = p
	}
	return &Overlay{doc: doc}, nil
}

func validate(doc *document) error {
	fb := doc.Fallback
	for name, b := range map[string]types.BilingualText{
		"fallback.purpose":   fb.Purpose,
		"fallback.secondary": fb.Secondary,
		"moisture.critical":  doc.MoistureNotes.Critical,
		"moisture.moderate":  doc.MoistureNotes.Moderate,
	} {
		if !b.Complete() {
			return fmt.Errorf("%w: %s", ErrIncomplete, name)
		}
	}
	if err := checkIrrigation(fb.Irrigation, "fallback"); err != nil {
		return err
	}
	for key, p := range doc.Crops {
		if key != strings.ToLower(key) {
			return fmt.Errorf("%w: %q", ErrNonLowerKey, key)
		}
		if strings.TrimSpace(p.Fertilizer) == "" {
			return fmt.Errorf("%w: %s", ErrNoFertilizer, key)
		}
		if !p.Name.Complete() || !p.Purpose.Complete() || !p.Secondary.Complete() {
			return fmt.Errorf("%w: %s", ErrIncomplete, key)
		}
		if err := checkIrrigation(p.Irrigation, key); err != nil {
			return err
		}
	}
	for key, s := range doc.SoilPresets {
		if !s.Name.Complete() || s.PH <= 0 {
			return fmt.Errorf("%w: %s", ErrMissingPreset, key)
		}
	}
	return nil
}

func checkIrrigation(irr Irrigation, where string) error {
	if !irr.Method.Complete() || !irr.Timing.Complete() || !irr.Frequency.Complete() || !irr.Tips.Complete() {
		return fmt.Errorf("%w: %s irrigation", ErrIncomplete, where)
	}
	return nil
}

// Lookup matches crop exactly after lower-casing. No trimming, no synonyms.
func (o *Overlay) Lookup(crop string) (CropProfile, bool) {
	p, ok := o.doc.Crops[strings.ToLower(crop)]
	return p, ok
}

// Default builds the generic profile for a crop the table does not cover,
// using label (the model's fertilizer class) as the fertilizer.
func (o *Overlay) Default(crop, label string) CropProfile {
	vals := map[string]types.BilingualText{cropPlaceholder: o.CropName(crop)}
	fb := o.doc.Fallback
	return CropProfile{
		Crop:       strings.ToLower(crop),
		Name:       o.CropName(crop),
		Fertilizer: label,
		Purpose:    fb.Purpose.Replace(vals),
		Secondary:  fb.Secondary.Replace(vals),
		Irrigation: Irrigation{
			Method:    fb.Irrigation.Method.Replace(vals),
			Timing:    fb.Irrigation.Timing.Replace(vals),
			Frequency: fb.Irrigation.Frequency.Replace(vals),
			Tips:      fb.Irrigation.Tips.Replace(vals),
		},
	}
}

// CropName returns the display name of crop. Unknown crops echo the input.
func (o *Overlay) CropName(crop string) types.BilingualText {
	key := strings.ToLower(strings.TrimSpace(crop))
	if p, ok := o.doc.Crops[key]; ok {
		return p.Name
	}
	if n, ok := o.doc.Names[key]; ok {
		return n
	}
	return types.Same(strings.TrimSpace(crop))
}

// SeasonName returns the display name of season. Unknown seasons echo the input.
func (o *Overlay) SeasonName(season string) types.BilingualText {
	if n, ok := o.doc.Seasons[strings.ToLower(strings.TrimSpace(season))]; ok {
		return n
	}
	return types.Same(strings.TrimSpace(season))
}

// SoilPreset returns the typical readings for soilType (black, red, alluvial, sandy).
func (o *Overlay) SoilPreset(soilType string) (SoilPreset, bool) {
	s, ok := o.doc.SoilPresets[strings.ToLower(strings.TrimSpace(soilType))]
	return s, ok
}

// MoistureNotes returns the irrigation urgency notes.
func (o *Overlay) MoistureNotes() MoistureNotes {
	return o.doc.MoistureNotes
}

// Crops lists the curated crop keys in sorted order.
func (o *Overlay) Crops() []string {
	keys := make([]string, 0, len(o.doc.Crops))
	for k := range o.doc.Crops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
