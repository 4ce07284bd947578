// README: Merges model output with the crop overlay and soil-threshold rules.
package recommend

import (
	"fmt"
	"math"
	"strings"

	"agriadvisor/internal/modules/predictor"
	"agriadvisor/internal/types"
)

// Merger is stateless and safe for concurrent use.
type Merger struct {
	kb Knowledge
}

// NewMerger returns a Merger that consults kb.
func NewMerger(kb Knowledge) *Merger {
	return &Merger{kb: kb}
}

// Validate rejects readings that must not reach Merge.
func Validate(r SoilReading) error {
	for name, v := range map[string]float64{
		"N": r.N, "P": r.P, "K": r.K, "pH": r.PH, "moisture": r.Moisture, "land area": r.LandArea,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a number", ErrInvalidInput, name)
		}
	}
	switch {
	case r.N < 0 || r.P < 0 || r.K < 0:
		return fmt.Errorf("%w: nutrient values must be >= 0", ErrInvalidInput)
	case r.PH < 0 || r.PH > 14:
		return fmt.Errorf("%w: pH must be within 0-14", ErrInvalidInput)
	case r.Moisture < 0 || r.Moisture > 100:
		return fmt.Errorf("%w: moisture must be within 0-100", ErrInvalidInput)
	case r.LandArea < 0:
		return fmt.Errorf("%w: land area must be >= 0", ErrInvalidInput)
	case strings.TrimSpace(r.Crop) == "":
		return fmt.Errorf("%w: crop is required", ErrInvalidInput)
	case strings.TrimSpace(r.Season) == "":
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	return nil
}

// Merge builds the recommendation. The caller validates r and only calls
// Merge with output from a predictor that answered.
func (m *Merger) Merge(r SoilReading, out predictor.Output) Recommendation {
	quantity := clamp(out.Quantity, 0, math.Inf(1))
	success := clamp(out.SuccessProbability, 0, 1)
	label := ResolveLabel(out)

	profile, found := m.kb.Lookup(r.Crop)
	source := SourceOverlay
	if !found {
		profile = m.kb.Default(r.Crop, label)
		source = SourceModel
	}

	perAcre := round2(quantity)
	rec := Recommendation{
		FertilizerType:     profile.Fertilizer,
		FertilizerPurpose:  profile.Purpose,
		AdditionalInfo:     profile.Secondary,
		QuantityPerAcre:    perAcre,
		TotalQuantity:      round2(perAcre * r.LandArea),
		LandArea:           r.LandArea,
		IrrigationMethod:   profile.Irrigation.Method,
		IrrigationTiming:   profile.Irrigation.Timing,
		IrrigationFreq:     profile.Irrigation.Frequency,
		IrrigationTips:     profile.Irrigation.Tips,
		SuccessProbability: round2(success),
		Insights:           Insights(r),
		Source:             source,
		ModelLabel:         label,
	}

	notes := m.kb.MoistureNotes()
	switch {
	case r.Moisture < criticalMoisture:
		rec.IrrigationTips = rec.IrrigationTips.Append(notes.Critical)
	case r.Moisture < moderateMoisture:
		rec.IrrigationTips = rec.IrrigationTips.Append(notes.Moderate)
	}

	rec.Suggestion = suggestionTemplate.Replace(map[string]types.BilingualText{
		"{crop}":       m.kb.CropName(r.Crop),
		"{season}":     m.kb.SeasonName(r.Season),
		"{fertilizer}": types.Same(profile.Fertilizer),
		"{purpose}":    profile.Purpose,
	})
	return rec
}

// ResolveLabel picks the highest-scoring class; the first index wins ties.
// NaN scores never win. With no usable scores it returns FallbackFertilizer.
func ResolveLabel(out predictor.Output) string {
	best := -1
	for i, p := range out.TypeProbabilities {
		if i >= len(out.Classes) || math.IsNaN(p) {
			continue
		}
		if best < 0 || p > out.TypeProbabilities[best] {
			best = i
		}
	}
	if best < 0 || strings.TrimSpace(out.Classes[best]) == "" {
		return FallbackFertilizer
	}
	return out.Classes[best]
}

// Insights applies the soil-threshold rules. The pH rules are exclusive.
func Insights(r SoilReading) []types.BilingualText {
	insights := []types.BilingualText{}
	if r.N < lowNitrogen {
		insights = append(insights, insightLowNitrogen)
	}
	if r.PH < acidicPH {
		insights = append(insights, insightAcidic)
	} else if r.PH > alkalinePH {
		insights = append(insights, insightAlkaline)
	}
	if r.Moisture < criticalMoisture {
		insights = append(insights, insightCriticalMoisture)
	}
	return insights
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), math.IsInf(v, 1) && math.IsInf(hi, 1):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
