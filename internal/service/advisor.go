// README: Advisor orchestrates chat replies and fertilizer recommendations and records them.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"agriadvisor/internal/modules/history"
	"agriadvisor/internal/modules/intent"
	"agriadvisor/internal/modules/lexicon"
	"agriadvisor/internal/modules/predictor"
	"agriadvisor/internal/modules/recommend"
	"agriadvisor/internal/types"
)

// DefaultPredictTimeout bounds a single predictor call.
const DefaultPredictTimeout = 5 * time.Second

// ErrPredictorUnavailable is returned when no predictor is configured or the
// configured one failed or timed out. No recommendation is produced.
var ErrPredictorUnavailable = errors.New("model not ready")

// Query is one chat message.
type Query struct {
	Text     string
	Language string
	Name     string
	Location string
}

type ChatReply struct {
	Reply    string         `json:"reply"`
	Topic    intent.Topic   `json:"topic"`
	Language types.Language `json:"language"`
}

type Advisor struct {
	engine    Engine
	predictor predictor.Predictor
	history   *history.Service
	timeout   time.Duration
	log       *zap.Logger
}

// NewAdvisor wires the engine to a predictor and the consultation log.
// pred may be nil (recommendations then fail with ErrPredictorUnavailable);
// hist may be nil or disabled.
func NewAdvisor(engine Engine, pred predictor.Predictor, hist *history.Service, timeout time.Duration, log *zap.Logger) *Advisor {
	if timeout <= 0 {
		timeout = DefaultPredictTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{engine: engine, predictor: pred, history: hist, timeout: timeout, log: log}
}

// Ready reports whether recommendations can be served.
func (a *Advisor) Ready() bool {
	return a.predictor != nil
}

// Engine exposes the loaded components (crop list, presets) to transports.
func (a *Advisor) Engine() Engine {
	return a.engine
}

// Chat classifies the query and returns the reply. It never fails.
func (a *Advisor) Chat(ctx context.Context, q Query) ChatReply {
	lang := lexicon.ResolveLanguage(q.Language, q.Text)
	topic := a.engine.Classifier.Classify(q.Text, lang)
	reply := a.engine.Responder.Respond(topic, q.Text, lang,
		strings.TrimSpace(q.Name), strings.TrimSpace(q.Location))

	if err := a.history.RecordChat(ctx, string(lang), string(topic), q.Text); err != nil {
		a.log.Warn("record chat", zap.Error(err))
	}
	return ChatReply{Reply: reply, Topic: topic, Language: lang}
}

// Recommend validates r, asks the predictor and merges its answer with the
// crop overlay.
func (a *Advisor) Recommend(ctx context.Context, r recommend.SoilReading) (recommend.Recommendation, error) {
	if err := recommend.Validate(r); err != nil {
		return recommend.Recommendation{}, err
	}
	if a.predictor == nil {
		return recommend.Recommendation{}, ErrPredictorUnavailable
	}

	pctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	out, err := a.predictor.Predict(pctx, predictor.Input{
		N:        r.N,
		P:        r.P,
		K:        r.K,
		PH:       r.PH,
		Moisture: r.Moisture,
		Crop:     r.Crop,
		Season:   r.Season,
	})
	if err != nil {
		a.log.Warn("predictor failed",
			zap.String("crop", r.Crop),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return recommend.Recommendation{}, fmt.Errorf("%w: %v", ErrPredictorUnavailable, err)
	}

	rec := a.engine.Merger.Merge(r, out)
	a.log.Debug("recommendation",
		zap.String("crop", r.Crop),
		zap.String("fertilizer", rec.FertilizerType),
		zap.String("source", string(rec.Source)),
		zap.Duration("elapsed", time.Since(start)))

	if err := a.history.RecordRecommendation(ctx, strings.ToLower(r.Crop), rec.FertilizerType); err != nil {
		a.log.Warn("record recommendation", zap.Error(err))
	}
	return rec, nil
}
