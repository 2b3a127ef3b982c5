package aiusage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGStore is a Postgres-backed audit store.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed audit store.
func NewPGStore(database *sql.DB) *PGStore {
	return &PGStore{DB: database}
}

func (s *PGStore) Insert(ctx context.Context, rec Record) error {
	var metadata any
	if len(rec.Metadata) > 0 {
		raw, err := json.Marshal(rec.Metadata)
		if err != nil {
			return err
		}
		metadata = raw
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO ai_usage (id, user_id, operation, created_at, success, tokens_used, estimated_cost, model_version, latency_ms, error_message, input_sample, output_sample, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.UserID, string(rec.Operation), rec.CreatedAt, rec.Success,
		rec.TokensUsed, rec.EstimatedCost, rec.ModelVersion, rec.LatencyMS,
		rec.ErrorMessage, rec.InputSample, rec.OutputSample, metadata,
	)
	return err
}

func (s *PGStore) CountSince(ctx context.Context, userID string, op Operation, since time.Time) (int, error) {
	var count int
	row := s.DB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM ai_usage WHERE user_id = $1 AND operation = $2 AND created_at >= $3`,
		userID, string(op), since)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PGStore) OldestSince(ctx context.Context, userID string, op Operation, since time.Time) (time.Time, bool, error) {
	var oldest time.Time
	row := s.DB.QueryRowContext(ctx, `
SELECT created_at FROM ai_usage WHERE user_id = $1 AND operation = $2 AND created_at >= $3
ORDER BY created_at ASC LIMIT 1`,
		userID, string(op), since)
	if err := row.Scan(&oldest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return oldest, true, nil
}

var _ Store = (*PGStore)(nil)
