// README: Predictor backed by a remote model server speaking JSON over HTTP.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBytes = 1 << 20

// HTTPPredictor posts the feature row to a model server and decodes its Output.
type HTTPPredictor struct {
	url    string
	client *http.Client
}

// NewHTTPPredictor returns a predictor for the model server at url.
// A zero timeout leaves the deadline to the caller's context.
func NewHTTPPredictor(url string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{url: url, client: &http.Client{Timeout: timeout}}
}

func (p *HTTPPredictor) Predict(ctx context.Context, in Input) (Output, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return Output{}, fmt.Errorf("encode input: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Output{}, ctx.Err()
		}
		return Output{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Output{}, fmt.Errorf("%w: model server returned %d", ErrUnavailable, resp.StatusCode)
	}

	var out Output
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return Output{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(out.Classes) != len(out.TypeProbabilities) {
		return Output{}, fmt.Errorf("%w: %d classes but %d scores", ErrUnavailable, len(out.Classes), len(out.TypeProbabilities))
	}
	return out, nil
}
