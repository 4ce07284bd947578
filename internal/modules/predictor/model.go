// README: Predictor contract: soil/crop features in, fertilizer class distribution, quantity and success probability out.
package predictor

import (
	"context"
	"errors"
)

// ErrUnavailable means the model is not loaded, timed out or answered with garbage.
var ErrUnavailable = errors.New("predictor unavailable")

// Input is the feature row sent to the model. JSON names follow the
// training dataset columns.
type Input struct {
	N        float64 `json:"Soil_N"`
	P        float64 `json:"Soil_P"`
	K        float64 `json:"Soil_K"`
	PH       float64 `json:"Soil_pH"`
	Moisture float64 `json:"Soil_Moisture"`
	Crop     string  `json:"Crop_Name"`
	Season   string  `json:"Season"`
}

// Output is the raw model answer. TypeProbabilities[i] is the score of
// Classes[i]. Values are not range-checked here.
type Output struct {
	Classes            []string  `json:"classes"`
	TypeProbabilities  []float64 `json:"type_probabilities"`
	Quantity           float64   `json:"quantity"`
	SuccessProbability float64   `json:"success_probability"`
}

// Predictor is implemented by every model backend.
type Predictor interface {
	Predict(ctx context.Context, in Input) (Output, error)
}

// Static always returns the same answer. Used by the CLI and tests.
type Static struct {
	Out Output
	Err error
}

func (s Static) Predict(ctx context.Context, _ Input) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	return s.Out, s.Err
}

// Label returns a single-class Output for label with the given quantity and probability.
func Label(label string, quantity, success float64) Output {
	return Output{
		Classes:            []string{label},
		TypeProbabilities:  []float64{1},
		Quantity:           quantity,
		SuccessProbability: success,
	}
}
