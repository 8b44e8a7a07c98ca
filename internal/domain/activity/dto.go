package activity

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/settings"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
)

// ========================================
// READ PATH
// ========================================

// SummaryFilter narrows the records aggregated per employee.
// From and To are inclusive shift dates, so a date's Shift 2 includes the
// following early morning. Latest status is never windowed.
type SummaryFilter struct {
	From string
	To   string

	FromDate *time.Time `json:"-"`
	ToDate   *time.Time `json:"-"`
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		d, ok := validator.IsValidDate(f.From)
		if !ok {
			errs.Add("from", "from must be a date in YYYY-MM-DD format")
		} else {
			f.FromDate = &d
		}
	}

	if f.To != "" {
		d, ok := validator.IsValidDate(f.To)
		if !ok {
			errs.Add("to", "to must be a date in YYYY-MM-DD format")
		} else {
			f.ToDate = &d
		}
	}

	if f.FromDate != nil && f.ToDate != nil && f.ToDate.Before(*f.FromDate) {
		errs.Add("to", "to must not be before from")
	}

	return errs.Err()
}

// EmployeeSummary is one employee with their aggregated sessions.
type EmployeeSummary struct {
	ID           string              `json:"id"`
	User         string              `json:"user"`
	Name         string              `json:"name"`
	Department   *string             `json:"department,omitempty"`
	LatestStatus string              `json:"latest_status"`
	Sessions     []NormalizedSession `json:"sessions"`
	Shifts       []ShiftGroup        `json:"shifts"`
}

type ListSummariesResponse struct {
	Employees []EmployeeSummary          `json:"employees"`
	Settings  settings.SettingsResponse `json:"settings"`
}

// ========================================
// WRITE PATH
// ========================================

type RecordIdleLogRequest struct {
	User      string  `json:"user"`
	Status    string  `json:"status"`
	Reason    string  `json:"reason"`
	Category  string  `json:"category"`
	Timestamp *string `json:"timestamp,omitempty"`
	IdleStart *string `json:"idle_start,omitempty"`
	IdleEnd   *string `json:"idle_end,omitempty"`

	TimestampAt *time.Time `json:"-"`
	IdleStartAt *time.Time `json:"-"`
	IdleEndAt   *time.Time `json:"-"`
}

func (r *RecordIdleLogRequest) Validate() error {
	var errs validator.ValidationErrors

	r.User = strings.TrimSpace(r.User)
	if validator.IsEmpty(r.User) {
		errs.Add("user", "user is required")
	}

	if !validator.IsInSlice(r.Status, []string{StatusActive, StatusIdle}) {
		errs.Add("status", "status must be Active or Idle")
	}

	if r.Category == "" {
		r.Category = CategoryUncategorized
	} else if !validator.IsInSlice(r.Category, IdleCategories) {
		errs.Add("category", "category must be one of Official, General, Namaz, Uncategorized")
	}

	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	r.TimestampAt = parseInstant(&errs, "timestamp", r.Timestamp)
	r.IdleStartAt = parseInstant(&errs, "idle_start", r.IdleStart)
	r.IdleEndAt = parseInstant(&errs, "idle_end", r.IdleEnd)

	if r.Status == StatusIdle && r.IdleStart == nil {
		errs.Add("idle_start", "idle_start is required for Idle status")
	}
	if r.IdleEnd != nil && r.IdleStart == nil {
		errs.Add("idle_end", "idle_end requires idle_start")
	}
	if r.IdleStartAt != nil && r.IdleEndAt != nil && r.IdleEndAt.Before(*r.IdleStartAt) {
		errs.Add("idle_end", "idle_end must not be before idle_start")
	}

	return errs.Err()
}

type CloseIdleLogRequest struct {
	ID      string `json:"-"`
	IdleEnd string `json:"idle_end"`

	IdleEndAt time.Time `json:"-"`
}

func (r *CloseIdleLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if t, ok := validator.IsValidDateTime(r.IdleEnd); ok {
		r.IdleEndAt = t
	} else {
		errs.Add("idle_end", "idle_end must be an RFC3339 timestamp")
	}

	return errs.Err()
}

type RecordAutoBreakRequest struct {
	User            string  `json:"user"`
	BreakStart      string  `json:"break_start"`
	BreakEnd        *string `json:"break_end,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Timestamp       *string `json:"timestamp,omitempty"`

	BreakStartAt time.Time  `json:"-"`
	BreakEndAt   *time.Time `json:"-"`
	TimestampAt  *time.Time `json:"-"`
}

func (r *RecordAutoBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	r.User = strings.TrimSpace(r.User)
	if validator.IsEmpty(r.User) {
		errs.Add("user", "user is required")
	}

	if t, ok := validator.IsValidDateTime(r.BreakStart); ok {
		r.BreakStartAt = t
	} else {
		errs.Add("break_start", "break_start must be an RFC3339 timestamp")
	}

	r.BreakEndAt = parseInstant(&errs, "break_end", r.BreakEnd)
	r.TimestampAt = parseInstant(&errs, "timestamp", r.Timestamp)

	if r.BreakEndAt != nil && !r.BreakStartAt.IsZero() && r.BreakEndAt.Before(r.BreakStartAt) {
		errs.Add("break_end", "break_end must not be before break_start")
	}

	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		errs.Add("duration_minutes", "duration_minutes must not be negative")
	}

	return errs.Err()
}

type IdleLogResponse struct {
	ID        string     `json:"id"`
	User      string     `json:"user"`
	Status    string     `json:"status"`
	Reason    string     `json:"reason"`
	Category  string     `json:"category"`
	Timestamp time.Time  `json:"timestamp"`
	IdleStart *time.Time `json:"idle_start"`
	IdleEnd   *time.Time `json:"idle_end"`
}

func ToIdleLogResponse(r IdleRecord) IdleLogResponse {
	return IdleLogResponse{
		ID:        r.ID,
		User:      r.User,
		Status:    r.Status,
		Reason:    r.Reason,
		Category:  r.Category,
		Timestamp: r.Timestamp,
		IdleStart: r.IdleStart,
		IdleEnd:   r.IdleEnd,
	}
}

type AutoBreakResponse struct {
	ID              string     `json:"id"`
	User            string     `json:"user"`
	Status          string     `json:"status"`
	BreakStart      *time.Time `json:"break_start"`
	BreakEnd        *time.Time `json:"break_end"`
	DurationMinutes int        `json:"duration_minutes"`
	Timestamp       time.Time  `json:"timestamp"`
}

func ToAutoBreakResponse(r AutoBreakRecord) AutoBreakResponse {
	return AutoBreakResponse{
		ID:              r.ID,
		User:            r.User,
		Status:          r.Status,
		BreakStart:      r.BreakStart,
		BreakEnd:        r.BreakEnd,
		DurationMinutes: r.DurationMinutes,
		Timestamp:       r.Timestamp,
	}
}

// parseInstant parses an optional RFC3339 field, recording a field error when malformed.
func parseInstant(errs *validator.ValidationErrors, field string, value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, ok := validator.IsValidDateTime(*value)
	if !ok {
		errs.Add(field, field+" must be an RFC3339 timestamp")
		return nil
	}
	return &t
}
