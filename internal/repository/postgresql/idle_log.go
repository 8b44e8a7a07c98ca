package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const idleLogColumns = `id, username, status, reason, category, "timestamp", idle_start, idle_end`

type idleLogRepositoryImpl struct {
	db *database.DB
}

func NewIdleLogRepository(db *database.DB) activity.IdleLogRepository {
	return &idleLogRepositoryImpl{db: db}
}

func scanIdleLog(row pgx.Row) (activity.IdleRecord, error) {
	var r activity.IdleRecord
	err := row.Scan(&r.ID, &r.User, &r.Status, &r.Reason, &r.Category, &r.Timestamp, &r.IdleStart, &r.IdleEnd)
	return r, err
}

// ListByUser implements activity.IdleLogRepository.
func (r *idleLogRepositoryImpl) ListByUser(ctx context.Context, user string, rng activity.TimeRange) ([]activity.IdleRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + idleLogColumns + `
		FROM idle_logs
		WHERE username = $1
			AND ($2::timestamptz IS NULL OR COALESCE(idle_start, "timestamp") >= $2)
			AND ($3::timestamptz IS NULL OR COALESCE(idle_start, "timestamp") < $3)
		ORDER BY "timestamp" ASC
	`

	rows, err := q.Query(ctx, query, user, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list idle logs for %s: %w", user, err)
	}
	defer rows.Close()

	records := make([]activity.IdleRecord, 0)
	for rows.Next() {
		rec, err := scanIdleLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idle log: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetByID implements activity.IdleLogRepository.
func (r *idleLogRepositoryImpl) GetByID(ctx context.Context, id string) (activity.IdleRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + idleLogColumns + ` FROM idle_logs WHERE id = $1`

	rec, err := scanIdleLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return activity.IdleRecord{}, activity.ErrIdleLogNotFound
		}
		return activity.IdleRecord{}, fmt.Errorf("failed to get idle log with id %s: %w", id, err)
	}
	return rec, nil
}

// Create implements activity.IdleLogRepository.
func (r *idleLogRepositoryImpl) Create(ctx context.Context, record activity.IdleRecord) (activity.IdleRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO idle_logs (id, username, status, reason, category, "timestamp", idle_start, idle_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + idleLogColumns

	created, err := scanIdleLog(q.QueryRow(ctx, query,
		record.ID, record.User, record.Status, record.Reason, record.Category,
		record.Timestamp, record.IdleStart, record.IdleEnd,
	))
	if err != nil {
		return activity.IdleRecord{}, fmt.Errorf("failed to create idle log: %w", err)
	}
	return created, nil
}

// SetIdleEnd implements activity.IdleLogRepository.
func (r *idleLogRepositoryImpl) SetIdleEnd(ctx context.Context, id string, idleEnd time.Time) (activity.IdleRecord, error) {
	var updated activity.IdleRecord

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var alreadyClosed bool
		err := q.QueryRow(txCtx, `SELECT idle_end IS NOT NULL FROM idle_logs WHERE id = $1 FOR UPDATE`, id).Scan(&alreadyClosed)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return activity.ErrIdleLogNotFound
			}
			return fmt.Errorf("failed to lock idle log with id %s: %w", id, err)
		}
		if alreadyClosed {
			return activity.ErrIdleLogAlreadyClosed
		}

		query := `
			UPDATE idle_logs
			SET idle_end = $2
			WHERE id = $1
			RETURNING ` + idleLogColumns

		updated, err = scanIdleLog(q.QueryRow(txCtx, query, id, idleEnd))
		if err != nil {
			return fmt.Errorf("failed to close idle log with id %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return activity.IdleRecord{}, err
	}

	return updated, nil
}
