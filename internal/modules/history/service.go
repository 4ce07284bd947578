// README: Consultation history service; a nil store turns every call into a no-op.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service records consultations. It never blocks advice on storage.
type Service struct {
	store *Store
	now   func() time.Time
}

// NewService creates a Service backed by store. A nil store disables history:
// writes succeed silently and reads return ErrDisabled.
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Enabled reports whether a database is attached.
func (s *Service) Enabled() bool {
	return s != nil && s.store != nil
}

func (s *Service) RecordChat(ctx context.Context, language, topic, query string) error {
	return s.record(ctx, Consultation{
		Kind:     KindChat,
		Language: language,
		Topic:    topic,
		Query:    truncate(query, maxQueryLen),
	})
}

// RecordRecommendation logs a prediction. Recommendations carry both
// languages, so no language is stored.
func (s *Service) RecordRecommendation(ctx context.Context, crop, fertilizer string) error {
	return s.record(ctx, Consultation{
		Kind:       KindRecommendation,
		Crop:       crop,
		Fertilizer: fertilizer,
	})
}

// TopicCounts returns the chat topic histogram for the last window.
// A zero window counts everything.
func (s *Service) TopicCounts(ctx context.Context, window time.Duration) ([]TopicCount, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	var since time.Time
	if window > 0 {
		since = s.now().Add(-window)
	}
	counts, err := s.store.TopicCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("topic counts: %w", err)
	}
	return counts, nil
}

// Recent returns up to limit of the newest consultations.
func (s *Service) Recent(ctx context.Context, limit int) ([]Consultation, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	out, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent consultations: %w", err)
	}
	return out, nil
}

func (s *Service) record(ctx context.Context, c Consultation) error {
	if !s.Enabled() {
		return nil
	}
	c.ID = uuid.New()
	c.CreatedAt = s.now().UTC()
	if err := s.store.Insert(ctx, c); err != nil {
		return fmt.Errorf("record %s consultation: %w", c.Kind, err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
