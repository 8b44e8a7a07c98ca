package settings

import (
	"fmt"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
)

type SettingsResponse struct {
	GeneralIdleLimit int     `json:"general_idle_limit"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

type UpdateSettingsRequest struct {
	GeneralIdleLimit *int `json:"general_idle_limit"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GeneralIdleLimit == nil {
		errs.Add("general_idle_limit", "general_idle_limit is required")
	} else if *r.GeneralIdleLimit <= 0 || *r.GeneralIdleLimit > MaxGeneralIdleLimit {
		errs.Add("general_idle_limit", fmt.Sprintf("general_idle_limit must be between 1 and %d", MaxGeneralIdleLimit))
	}

	return errs.Err()
}

type DisplayConfigResponse struct {
	CategoryColors          map[string]string `json:"category_colors"`
	DefaultGeneralIdleLimit int               `json:"default_general_idle_limit"`
	Timezone                string            `json:"timezone"`
}
