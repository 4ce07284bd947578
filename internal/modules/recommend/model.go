// README: Soil reading input, merged recommendation output and the fixed bilingual rule texts.
package recommend

import (
	"errors"

	"agriadvisor/internal/modules/knowledge"
	"agriadvisor/internal/types"
)

// ErrInvalidInput is returned by Validate for readings the merger must not see.
var ErrInvalidInput = errors.New("invalid soil reading")

const (
	// DefaultLandArea applies when the caller omits the land area.
	DefaultLandArea = 1.0
	// FallbackFertilizer is used when the model returns no class scores.
	FallbackFertilizer = "NPK Complex (19:19:19)"

	lowNitrogen      = 50.0
	acidicPH         = 6.0
	alkalinePH       = 7.5
	criticalMoisture = 20.0
	moderateMoisture = 40.0
)

// Source records which side decided the fertilizer type.
type Source string

const (
	SourceOverlay Source = "overlay"
	SourceModel   Source = "model"
)

// SoilReading is one prediction request.
type SoilReading struct {
	N        float64
	P        float64
	K        float64
	PH       float64
	Moisture float64
	Crop     string
	Season   string
	LandArea float64
}

// Recommendation is the merged advice. Every text field carries both languages.
type Recommendation struct {
	FertilizerType     string                `json:"fertilizer_type"`
	FertilizerPurpose  types.BilingualText   `json:"fertilizer_purpose"`
	AdditionalInfo     types.BilingualText   `json:"additional_info"`
	QuantityPerAcre    float64               `json:"quantity_per_acre"`
	TotalQuantity      float64               `json:"total_quantity"`
	LandArea           float64               `json:"land_area"`
	IrrigationMethod   types.BilingualText   `json:"irrigation_method"`
	IrrigationTiming   types.BilingualText   `json:"irrigation_timing"`
	IrrigationFreq     types.BilingualText   `json:"irrigation_frequency"`
	IrrigationTips     types.BilingualText   `json:"irrigation_tips"`
	SuccessProbability float64               `json:"success_probability"`
	Insights           []types.BilingualText `json:"insights"`
	Suggestion         types.BilingualText   `json:"suggestion"`
	Source             Source                `json:"source"`
	ModelLabel         string                `json:"model_label"`
}

// Knowledge is the part of the crop overlay the merger reads.
type Knowledge interface {
	Lookup(crop string) (knowledge.CropProfile, bool)
	Default(crop, label string) knowledge.CropProfile
	CropName(crop string) types.BilingualText
	SeasonName(season string) types.BilingualText
	MoistureNotes() knowledge.MoistureNotes
}

var (
	insightLowNitrogen = types.BilingualText{
		EN: "Nitrogen is low. Essential for leafy growth.",
		TE: "నత్రజని తక్కువగా ఉంది. ఆకుల పెరుగుదలకు ఇది అవసరం.",
	}
	insightAcidic = types.BilingualText{
		EN: "Soil is acidic. Consider adding lime to neutralize.",
		TE: "నేల ఆమ్లంగా ఉంది. తటస్థం చేయడానికి సున్నం వేయడం పరిగణించండి.",
	}
	insightAlkaline = types.BilingualText{
		EN: "Soil is alkaline. Considerations for pH reduction.",
		TE: "నేల క్షారంగా ఉంది. pH తగ్గించే చర్యలు పరిగణించండి.",
	}
	insightCriticalMoisture = types.BilingualText{
		EN: "Moisture is critically low. Immediate irrigation recommended.",
		TE: "తేమ చాలా తక్కువగా ఉంది. వెంటనే నీరు పెట్టడం మంచిది.",
	}
	suggestionTemplate = types.BilingualText{
		EN: "For {crop} in {season}, use {fertilizer}. {purpose}",
		TE: "{season} కాలంలో {crop} పంటకు {fertilizer} వాడండి. {purpose}",
	}
)
