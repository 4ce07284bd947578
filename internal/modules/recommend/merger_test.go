package recommend

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"agriadvisor/internal/modules/knowledge"
	"agriadvisor/internal/modules/predictor"
	"agriadvisor/internal/types"
)

func newMerger(t *testing.T) (*Merger, *knowledge.Overlay) {
	t.Helper()
	kb, err := knowledge.Load()
	require.NoError(t, err)
	return NewMerger(kb), kb
}

func riceReading() SoilReading {
	return SoilReading{N: 45, P: 55, K: 60, PH: 7.2, Moisture: 35, Crop: "Rice", Season: "Kharif", LandArea: 5}
}

func TestMergeRiceOverridesModelLabel(t *testing.T) {
	m, _ := newMerger(t)

	rec := m.Merge(riceReading(), predictor.Label("Urea", 52.4, 0.87))

	assert.Equal(t, "DAP", rec.FertilizerType)
	assert.Equal(t, SourceOverlay, rec.Source)
	assert.Equal(t, "Urea", rec.ModelLabel)
	assert.Equal(t, 52.4, rec.QuantityPerAcre)
	assert.InDelta(t, 262.0, rec.TotalQuantity, 1e-9)
	assert.Equal(t, 0.87, rec.SuccessProbability)
	assert.Equal(t, []types.BilingualText{insightLowNitrogen}, rec.Insights)
	assert.True(t, strings.HasSuffix(rec.IrrigationTips.EN, "plan next irrigation soon."))
	assert.Equal(t, "Flood irrigation or Alternate Wetting and Drying (AWD)", rec.IrrigationMethod.EN)

	assert.True(t, strings.HasPrefix(rec.Suggestion.EN, "For Rice in Kharif, use DAP. "))
	assert.Contains(t, rec.Suggestion.TE, "వరి")
	assert.Contains(t, rec.Suggestion.TE, "ఖరీఫ్")
	assert.Contains(t, rec.Suggestion.TE, "DAP")
}

func TestMergeUnknownCropFallsBackToModel(t *testing.T) {
	m, kb := newMerger(t)
	r := SoilReading{N: 60, P: 40, K: 40, PH: 6.5, Moisture: 45, Crop: "Mustard", Season: "Rabi", LandArea: 2}
	out := predictor.Output{
		Classes:            []string{"Urea", "DAP", "MOP"},
		TypeProbabilities:  []float64{0.2, 0.7, 0.1},
		Quantity:           30,
		SuccessProbability: 0.6,
	}

	rec := m.Merge(r, out)

	want := kb.Default("Mustard", "DAP")
	assert.Equal(t, "DAP", rec.FertilizerType)
	assert.Equal(t, SourceModel, rec.Source)
	assert.Equal(t, want.Purpose, rec.FertilizerPurpose)
	assert.Equal(t, want.Secondary, rec.AdditionalInfo)
	assert.Equal(t, "ML-recommended fertilizer for Mustard", rec.FertilizerPurpose.EN)
	assert.Equal(t, want.Irrigation.Tips, rec.IrrigationTips, "no moisture note at 45%")
	assert.Empty(t, rec.Insights)
	assert.NotNil(t, rec.Insights)
	assert.Equal(t, 60.0, rec.TotalQuantity)
}

func TestMergeClampsPredictorOutput(t *testing.T) {
	m, _ := newMerger(t)
	tests := []struct {
		name            string
		quantity, prob  float64
		wantQty, wantSP float64
	}{
		{"in range", 12.345678, 0.456, 12.35, 0.46},
		{"negative quantity", -4, 0.5, 0, 0.5},
		{"probability above one", 10, 1.7, 10, 1},
		{"probability below zero", 10, -0.3, 10, 0},
		{"nan", math.NaN(), math.NaN(), 0, 0},
		{"infinite", math.Inf(1), math.Inf(1), 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := m.Merge(riceReading(), predictor.Label("Urea", tt.quantity, tt.prob))
			assert.Equal(t, tt.wantQty, rec.QuantityPerAcre)
			assert.Equal(t, tt.wantSP, rec.SuccessProbability)
		})
	}
}

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		name string
		out  predictor.Output
		want string
	}{
		{"argmax", predictor.Output{Classes: []string{"A", "B", "C"}, TypeProbabilities: []float64{0.1, 0.6, 0.3}}, "B"},
		{"tie keeps first", predictor.Output{Classes: []string{"A", "B", "C"}, TypeProbabilities: []float64{0.4, 0.4, 0.2}}, "A"},
		{"nan skipped", predictor.Output{Classes: []string{"A", "B"}, TypeProbabilities: []float64{math.NaN(), 0.1}}, "B"},
		{"empty", predictor.Output{}, FallbackFertilizer},
		{"more scores than classes", predictor.Output{Classes: []string{"A"}, TypeProbabilities: []float64{0.1, 0.9}}, "A"},
		{"blank class", predictor.Output{Classes: []string{" "}, TypeProbabilities: []float64{1}}, FallbackFertilizer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveLabel(tt.out), tt.name)
	}
}

func TestInsightsPHExclusive(t *testing.T) {
	for _, ph := range []float64{0, 4.5, 5.99, 6.0, 6.8, 7.5, 7.51, 9, 14} {
		r := SoilReading{N: 80, PH: ph, Moisture: 50}
		got := Insights(r)
		hasAcid := contains(got, insightAcidic)
		hasAlk := contains(got, insightAlkaline)

		assert.False(t, hasAcid && hasAlk, "pH %v", ph)
		assert.Equal(t, ph < 6.0, hasAcid, "pH %v", ph)
		assert.Equal(t, ph > 7.5, hasAlk, "pH %v", ph)
	}
}

func TestInsightsIndependentRules(t *testing.T) {
	got := Insights(SoilReading{N: 10, PH: 5, Moisture: 10})
	assert.Equal(t, []types.BilingualText{insightLowNitrogen, insightAcidic, insightCriticalMoisture}, got)

	got = Insights(SoilReading{N: 50, PH: 7.5, Moisture: 20})
	assert.Empty(t, got)
}

func TestMoistureNotes(t *testing.T) {
	m, kb := newMerger(t)
	notes := kb.MoistureNotes()
	profile, _ := kb.Lookup("tomato")

	r := SoilReading{N: 60, PH: 6.5, Crop: "tomato", Season: "Rabi", LandArea: 1}

	r.Moisture = 10
	assert.Equal(t, profile.Irrigation.Tips.Append(notes.Critical), m.Merge(r, predictor.Label("x", 1, 1)).IrrigationTips)
	r.Moisture = 39.9
	assert.Equal(t, profile.Irrigation.Tips.Append(notes.Moderate), m.Merge(r, predictor.Label("x", 1, 1)).IrrigationTips)
	r.Moisture = 40
	assert.Equal(t, profile.Irrigation.Tips, m.Merge(r, predictor.Label("x", 1, 1)).IrrigationTips)

	r.Crop = "Quinoa"
	r.Moisture = 5
	assert.True(t, strings.HasSuffix(m.Merge(r, predictor.Label("x", 1, 1)).IrrigationTips.EN, "irrigate immediately."))
}

func TestTotalQuantity(t *testing.T) {
	m, _ := newMerger(t)
	for _, area := range []float64{0, 0.5, 1, 2.75, 5, 12.3} {
		for _, q := range []float64{0, 1.005, 33.333, 52.4, 120.019} {
			r := riceReading()
			r.LandArea = area
			rec := m.Merge(r, predictor.Label("Urea", q, 0.5))
			assert.Equal(t, round2(rec.QuantityPerAcre*area), rec.TotalQuantity, "q=%v area=%v", q, area)
			assert.Equal(t, area, rec.LandArea)
		}
	}
}

func TestEveryTextBilingual(t *testing.T) {
	m, kb := newMerger(t)
	crops := append(kb.Crops(), "Mustard", "Quinoa", "RICE")
	for _, crop := range crops {
		r := SoilReading{N: 20, P: 20, K: 20, PH: 8, Moisture: 15, Crop: crop, Season: "Zaid", LandArea: 1}
		rec := m.Merge(r, predictor.Output{})
		texts := []types.BilingualText{rec.FertilizerPurpose, rec.AdditionalInfo, rec.IrrigationMethod,
			rec.IrrigationTiming, rec.IrrigationFreq, rec.IrrigationTips, rec.Suggestion}
		texts = append(texts, rec.Insights...)
		for _, b := range texts {
			assert.True(t, b.Complete(), "%s: %+v", crop, b)
		}
		assert.NotEmpty(t, rec.FertilizerType)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(riceReading()))

	bad := []func(*SoilReading){
		func(r *SoilReading) { r.N = -1 },
		func(r *SoilReading) { r.K = math.NaN() },
		func(r *SoilReading) { r.PH = 15 },
		func(r *SoilReading) { r.Moisture = 120 },
		func(r *SoilReading) { r.LandArea = -2 },
		func(r *SoilReading) { r.LandArea = math.Inf(1) },
		func(r *SoilReading) { r.Crop = "  " },
		func(r *SoilReading) { r.Season = "" },
	}
	for i, mutate := range bad {
		r := riceReading()
		mutate(&r)
		assert.ErrorIs(t, Validate(r), ErrInvalidInput, "case %d", i)
	}

	zero := riceReading()
	zero.LandArea = 0
	assert.NoError(t, Validate(zero))
}

func TestConcurrentMerge(t *testing.T) {
	defer goleak.VerifyNone(t)
	m, _ := newMerger(t)
	want := m.Merge(riceReading(), predictor.Label("Urea", 40, 0.9))

	var wg sync.WaitGroup
	results := make([]Recommendation, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Merge(riceReading(), predictor.Label("Urea", 40, 0.9))
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func contains(list []types.BilingualText, b types.BilingualText) bool {
	for _, v := range list {
		if v == b {
			return true
		}
	}
	return false
}
