package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const autoBreakColumns = `id, username, status, break_start, break_end, duration_minutes, "timestamp"`

type autoBreakRepositoryImpl struct {
	db *database.DB
}

func NewAutoBreakRepository(db *database.DB) activity.AutoBreakRepository {
	return &autoBreakRepositoryImpl{db: db}
}

func scanAutoBreak(row pgx.Row) (activity.AutoBreakRecord, error) {
	var r activity.AutoBreakRecord
	err := row.Scan(&r.ID, &r.User, &r.Status, &r.BreakStart, &r.BreakEnd, &r.DurationMinutes, &r.Timestamp)
	return r, err
}

// ListByUser implements activity.AutoBreakRepository.
func (r *autoBreakRepositoryImpl) ListByUser(ctx context.Context, user string, rng activity.TimeRange) ([]activity.AutoBreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	// Breaks without a start sort last and are only bounded by timestamp.
	query := `
		SELECT ` + autoBreakColumns + `
		FROM auto_breaks
		WHERE username = $1
			AND ($2::timestamptz IS NULL OR COALESCE(break_start, "timestamp") >= $2)
			AND ($3::timestamptz IS NULL OR COALESCE(break_start, "timestamp") < $3)
		ORDER BY break_start ASC NULLS LAST
	`

	rows, err := q.Query(ctx, query, user, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-breaks for %s: %w", user, err)
	}
	defer rows.Close()

	records := make([]activity.AutoBreakRecord, 0)
	for rows.Next() {
		rec, err := scanAutoBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auto-break: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Create implements activity.AutoBreakRepository.
func (r *autoBreakRepositoryImpl) Create(ctx context.Context, record activity.AutoBreakRecord) (activity.AutoBreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO auto_breaks (id, username, status, break_start, break_end, duration_minutes, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + autoBreakColumns

	created, err := scanAutoBreak(q.QueryRow(ctx, query,
		record.ID, record.User, record.Status, record.BreakStart, record.BreakEnd,
		record.DurationMinutes, record.Timestamp,
	))
	if err != nil {
		return activity.AutoBreakRecord{}, fmt.Errorf("failed to create auto-break: %w", err)
	}
	return created, nil
}
