package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	defaultIdleLimit int
	timezone         string
}

func NewSettingsService(repo settings.SettingsRepository, defaultIdleLimit int, timezone string) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		defaultIdleLimit:   defaultIdleLimit,
		timezone:           timezone,
	}
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	stored, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.SettingsResponse{GeneralIdleLimit: s.defaultIdleLimit}, nil
		}
		return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if stored.GeneralIdleLimit <= 0 {
		stored.GeneralIdleLimit = s.defaultIdleLimit
	}

	return toResponse(stored), nil
}

// UpdateSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	saved, err := s.SettingsRepository.Upsert(ctx, settings.Settings{
		GeneralIdleLimit: *req.GeneralIdleLimit,
	})
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return toResponse(saved), nil
}

// DisplayConfig implements settings.SettingsService.
func (s *SettingsServiceImpl) DisplayConfig() settings.DisplayConfigResponse {
	colors := make(map[string]string, len(settings.CategoryColors))
	for k, v := range settings.CategoryColors {
		colors[k] = v
	}
	return settings.DisplayConfigResponse{
		CategoryColors:          colors,
		DefaultGeneralIdleLimit: s.defaultIdleLimit,
		Timezone:                s.timezone,
	}
}

func toResponse(s settings.Settings) settings.SettingsResponse {
	resp := settings.SettingsResponse{GeneralIdleLimit: s.GeneralIdleLimit}
	if s.UpdatedAt != nil {
		formatted := s.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &formatted
	}
	return resp
}
