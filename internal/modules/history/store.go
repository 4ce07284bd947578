// README: Postgres persistence for the consultation log.
package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles consultations persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, c Consultation) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO consultations (id, kind, language, topic, query, crop, fertilizer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, string(c.Kind), c.Language, c.Topic, c.Query, c.Crop, c.Fertilizer, c.CreatedAt)
	return err
}

// TopicCounts groups chat consultations created at or after since by topic,
// most frequent first.
func (s *Store) TopicCounts(ctx context.Context, since time.Time) ([]TopicCount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT topic, COUNT(*)
		FROM consultations
		WHERE kind = $1 AND created_at >= $2
		GROUP BY topic
		ORDER BY COUNT(*) DESC, topic ASC
	`, string(KindChat), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []TopicCount{}
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// Recent returns the newest consultations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Consultation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, kind, language, topic, query, crop, fertilizer, created_at
		FROM consultations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Consultation{}
	for rows.Next() {
		var c Consultation
		var kind string
		if err := rows.Scan(&c.ID, &kind, &c.Language, &c.Topic, &c.Query, &c.Crop, &c.Fertilizer, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Kind = Kind(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}
