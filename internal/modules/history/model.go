package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDisabled is returned by reads when no database is configured.
var ErrDisabled = errors.New("consultation history disabled")

// Kind tells chat questions apart from fertilizer recommendations.
type Kind string

const (
	KindChat           Kind = "chat"
	KindRecommendation Kind = "recommendation"
)

// maxQueryLen caps the stored question text, in runes.
const maxQueryLen = 500

type Consultation struct {
	ID         uuid.UUID `json:"id"`
	Kind       Kind      `json:"kind"`
	Language   string    `json:"language"`
	Topic      string    `json:"topic,omitempty"`
	Query      string    `json:"query,omitempty"`
	Crop       string    `json:"crop,omitempty"`
	Fertilizer string    `json:"fertilizer,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TopicCount is one row of the chat topic histogram.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int64  `json:"count"`
}
