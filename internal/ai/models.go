package ai

// DefaultClasses are the fertilizer labels the model is asked to score.
var DefaultClasses = []string{
	"Urea",
	"DAP",
	"MOP",
	"SSP",
	"NPK Complex (19:19:19)",
	"Ammonium Sulphate",
	"Compost",
}

// Estimate is the JSON object Gemini is instructed to return.
type Estimate struct {
	// Scores maps each fertilizer label to a probability. Labels outside the
	// requested class list are ignored.
	Scores map[string]float64 `json:"scores"`

	// QuantityKgPerAcre is the suggested dose for one acre.
	QuantityKgPerAcre float64 `json:"quantity_kg_per_acre"`

	// SuccessProbability is the estimated chance of a good harvest, 0 to 1.
	SuccessProbability float64 `json:"success_probability"`
}
