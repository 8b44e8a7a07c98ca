package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/settings"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// settingsRowID is the primary key of the singleton settings row.
const settingsRowID = 1

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.Settings
	err := q.QueryRow(ctx, `SELECT general_idle_limit, updated_at FROM settings WHERE id = $1`, settingsRowID).
		Scan(&s.GeneralIdleLimit, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (id, general_idle_limit, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET general_idle_limit = EXCLUDED.general_idle_limit, updated_at = NOW()
		RETURNING general_idle_limit, updated_at
	`

	var saved settings.Settings
	if err := q.QueryRow(ctx, query, settingsRowID, s.GeneralIdleLimit).Scan(&saved.GeneralIdleLimit, &saved.UpdatedAt); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return saved, nil
}
