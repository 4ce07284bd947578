package ai

import "context"

// Generator returns one JSON document for a prompt.
// GeminiClient is the production implementation; tests supply canned text.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}
