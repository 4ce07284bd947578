// README: Crop profile, soil preset and overlay error types.
package knowledge

import (
	"errors"

	"agriadvisor/internal/types"
)

var (
	ErrIncomplete    = errors.New("knowledge: entry missing a language")
	ErrNoFertilizer  = errors.New("knowledge: crop has no primary fertilizer")
	ErrNonLowerKey   = errors.New("knowledge: crop key must be lower-case")
	ErrMissingPreset = errors.New("knowledge: soil preset incomplete")
)

// Irrigation is the watering guidance for one crop.
type Irrigation struct {
	Method    types.BilingualText `yaml:"method" json:"method"`
	Timing    types.BilingualText `yaml:"timing" json:"timing"`
	Frequency types.BilingualText `yaml:"frequency" json:"frequency"`
	Tips      types.BilingualText `yaml:"tips" json:"tips"`
}

// CropProfile is one curated crop rule.
type CropProfile struct {
	Crop       string              `yaml:"-" json:"crop"`
	Name       types.BilingualText `yaml:"name" json:"name"`
	Fertilizer string              `yaml:"fertilizer" json:"fertilizer"`
	Purpose    types.BilingualText `yaml:"purpose" json:"purpose"`
	Secondary  types.BilingualText `yaml:"secondary" json:"secondary"`
	Irrigation Irrigation          `yaml:"irrigation" json:"irrigation"`
}

// MoistureNotes are appended to irrigation tips by soil moisture band.
type MoistureNotes struct {
	Critical types.BilingualText `yaml:"critical"`
	Moderate types.BilingualText `yaml:"moderate"`
}

// SoilPreset holds typical readings for a named soil type.
type SoilPreset struct {
	Name     types.BilingualText `yaml:"name" json:"name"`
	N        float64             `yaml:"n" json:"n"`
	P        float64             `yaml:"p" json:"p"`
	K        float64             `yaml:"k" json:"k"`
	PH       float64             `yaml:"ph" json:"ph"`
	Moisture float64             `yaml:"moisture" json:"moisture"`
}

type fallback struct {
	Purpose    types.BilingualText `yaml:"purpose"`
	Secondary  types.BilingualText `yaml:"secondary"`
	Irrigation Irrigation          `yaml:"irrigation"`
}
