package activity

import (
	"context"
	"time"
)

// TimeRange bounds a record fetch by start instant. Nil ends are open.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

type IdleLogRepository interface {
	// ListByUser returns the user's idle logs ordered by timestamp ascending.
	// Records without idle_start are only bounded by timestamp.
	ListByUser(ctx context.Context, user string, rng TimeRange) ([]IdleRecord, error)
	GetByID(ctx context.Context, id string) (IdleRecord, error)
	Create(ctx context.Context, record IdleRecord) (IdleRecord, error)
	// SetIdleEnd closes an open record. Returns ErrIdleLogAlreadyClosed if idle_end is set.
	SetIdleEnd(ctx context.Context, id string, idleEnd time.Time) (IdleRecord, error)
}

type AutoBreakRepository interface {
	// ListByUser returns the user's auto-breaks ordered by break_start ascending.
	ListByUser(ctx context.Context, user string, rng TimeRange) ([]AutoBreakRecord, error)
	Create(ctx context.Context, record AutoBreakRecord) (AutoBreakRecord, error)
}
