// README: Read-through Redis cache in front of any Predictor.
package predictor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "advisor:predict:"

// CachedPredictor stores successful answers of next in Redis for ttl.
// Redis failures are logged and bypassed; they never fail a prediction.
type CachedPredictor struct {
	next  Predictor
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedPredictor(next Predictor, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedPredictor {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedPredictor{next: next, redis: rdb, ttl: ttl, log: log}
}

func (c *CachedPredictor) Predict(ctx context.Context, in Input) (Output, error) {
	key := CacheKey(in)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out Output
		if jerr := json.Unmarshal(data, &out); jerr == nil {
			return out, nil
		}
		c.log.Warn("dropping corrupt cached prediction", zap.String("key", key))
		c.redis.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("prediction cache read failed", zap.Error(err))
	}

	out, err := c.next.Predict(ctx, in)
	if err != nil {
		return Output{}, err
	}
	if b, jerr := json.Marshal(out); jerr == nil {
		if serr := c.redis.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			c.log.Warn("prediction cache write failed", zap.Error(serr))
		}
	}
	return out, nil
}

// CacheKey is stable for equal inputs; crop and season compare case-insensitively.
func CacheKey(in Input) string {
	in.Crop = strings.ToLower(strings.TrimSpace(in.Crop))
	in.Season = strings.ToLower(strings.TrimSpace(in.Season))
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
