package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"autosphere-api/internal/model"
)

// LookupLogRepo handles database operations for the lookup audit log
type LookupLogRepo struct {
	pool *pgxpool.Pool
}

// NewLookupLogRepo creates a new lookup log repository
func NewLookupLogRepo(pool *pgxpool.Pool) *LookupLogRepo {
	return &LookupLogRepo{pool: pool}
}

// Record inserts one lookup outcome. ID and CreatedAt are filled in when empty.
func (r *LookupLogRepo) Record(ctx context.Context, entry *model.LookupLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO lookup_log (
			id, kind, query, success, error_type, error_message,
			result_count, latency_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Kind, entry.Query, entry.Success, entry.ErrorType,
		entry.ErrorMessage, entry.ResultCount, entry.LatencyMS, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup log: %w", err)
	}

	return nil
}

// Stats returns failure counts grouped by error type
func (r *LookupLogRepo) Stats(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT error_type, COUNT(*) as count
		FROM lookup_log
		WHERE NOT success
		GROUP BY error_type
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var errorType string
		var count int
		if err := rows.Scan(&errorType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats[errorType] = count
	}

	return stats, rows.Err()
}

// Recent returns the latest entries, newest first
func (r *LookupLogRepo) Recent(ctx context.Context, limit int) ([]model.LookupLog, error) {
	query := `
		SELECT
			id::text, kind, query, success, error_type, error_message,
			result_count, latency_ms, created_at
		FROM lookup_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent lookups: %w", err)
	}
	defer rows.Close()

	var entries []model.LookupLog
	for rows.Next() {
		var e model.LookupLog
		err := rows.Scan(
			&e.ID, &e.Kind, &e.Query, &e.Success, &e.ErrorType, &e.ErrorMessage,
			&e.ResultCount, &e.LatencyMS, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lookup row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteOlderThan removes entries older than the given duration
func (r *LookupLogRepo) DeleteOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := r.pool.Exec(ctx, `
		DELETE FROM lookup_log WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old lookups: %w", err)
	}

	return result.RowsAffected(), nil
}
