// README: Fertilizer predictor that asks an LLM for a class distribution, dose and success estimate.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agriadvisor/internal/modules/predictor"
)

// GeminiPredictor adapts a Generator to the predictor.Predictor contract.
type GeminiPredictor struct {
	gen     Generator
	classes []string
}

// NewGeminiPredictor scores classes (DefaultClasses when empty) with gen.
func NewGeminiPredictor(gen Generator, classes []string) *GeminiPredictor {
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	return &GeminiPredictor{gen: gen, classes: classes}
}

func (p *GeminiPredictor) Predict(ctx context.Context, in predictor.Input) (predictor.Output, error) {
	raw, err := p.gen.GenerateJSON(ctx, buildPrompt(in, p.classes))
	if err != nil {
		if ctx.Err() != nil {
			return predictor.Output{}, ctx.Err()
		}
		return predictor.Output{}, fmt.Errorf("%w: %v", predictor.ErrUnavailable, err)
	}

	var est Estimate
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &est); err != nil {
		return predictor.Output{}, fmt.Errorf("%w: failed to parse JSON response: %v", predictor.ErrUnavailable, err)
	}

	out := predictor.Output{
		Classes:            make([]string, len(p.classes)),
		TypeProbabilities:  make([]float64, len(p.classes)),
		Quantity:           est.QuantityKgPerAcre,
		SuccessProbability: est.SuccessProbability,
	}
	// Gemini does not always keep the label casing.
	scores := make(map[string]float64, len(est.Scores))
	for label, s := range est.Scores {
		scores[strings.ToLower(strings.TrimSpace(label))] = s
	}
	scored := 0
	for i, c := range p.classes {
		out.Classes[i] = c
		if s, ok := scores[strings.ToLower(c)]; ok {
			out.TypeProbabilities[i] = s
			scored++
		}
	}
	// An all-zero row would silently resolve to the first class.
	if scored == 0 {
		return predictor.Output{}, fmt.Errorf("%w: no requested label was scored", predictor.ErrUnavailable)
	}
	return out, nil
}

func buildPrompt(in predictor.Input, classes []string) string {
	return fmt.Sprintf(`Role: You are an agronomy model that recommends fertilizer for Indian smallholder farms.

Soil and crop reading:
- Nitrogen (N): %.2f
- Phosphorus (P): %.2f
- Potassium (K): %.2f
- pH: %.2f
- Soil moisture (%%): %.2f
- Crop: %s
- Season: %s

RULES:
1. Score EVERY label in this list with a probability between 0 and 1. The scores should sum to 1.
   Labels: %s
2. Use ONLY these labels as keys. Do not invent new fertilizers.
3. "quantity_kg_per_acre" is the dose of the highest-scoring fertilizer for one acre. Never negative.
4. "success_probability" is the chance of a good harvest with that advice, between 0 and 1.

Output JSON Schema:
{
  "scores": {"<label>": number},
  "quantity_kg_per_acre": number,
  "success_probability": number
}
`, in.N, in.P, in.K, in.PH, in.Moisture, in.Crop, in.Season, strings.Join(quote(classes), ", "))
}

func quote(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
