package settings

import "context"

type SettingsService interface {
	// GetSettings falls back to the configured default idle limit when nothing is stored.
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	// DisplayConfig is static and never touches storage.
	DisplayConfig() DisplayConfigResponse
}
