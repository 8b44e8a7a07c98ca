package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/employee"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/settings"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentEmployees bounds the per-employee fan-out on the read path.
// Each employee costs two queries, so 8 keeps a list request well under the
// default pgxpool size and leaves connections for ingest.
const maxConcurrentEmployees = 8

// lateShiftEndHour is when a shift date's late-night Shift 2 ends on the next calendar day.
const lateShiftEndHour = 6

type ActivityServiceImpl struct {
	employeeRepo    employee.EmployeeRepository
	idleLogRepo     activity.IdleLogRepository
	autoBreakRepo   activity.AutoBreakRepository
	settingsService settings.SettingsService
	aggregator      SessionAggregator
	classifier      ShiftClassifier
	now             func() time.Time
}

func NewActivityService(
	employeeRepo employee.EmployeeRepository,
	idleLogRepo activity.IdleLogRepository,
	autoBreakRepo activity.AutoBreakRepository,
	settingsService settings.SettingsService,
	classifier ShiftClassifier,
) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		employeeRepo:    employeeRepo,
		idleLogRepo:     idleLogRepo,
		autoBreakRepo:   autoBreakRepo,
		settingsService: settingsService,
		aggregator:      NewSessionAggregator(classifier),
		classifier:      classifier,
		now:             time.Now,
	}
}

// ListEmployeeSummaries implements activity.ActivityService.
func (s *ActivityServiceImpl) ListEmployeeSummaries(ctx context.Context, filter activity.SummaryFilter) (activity.ListSummariesResponse, error) {
	if err := filter.Validate(); err != nil {
		return activity.ListSummariesResponse{}, err
	}

	cfg, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return activity.ListSummariesResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}

	roster, err := s.employeeRepo.List(ctx)
	if err != nil {
		return activity.ListSummariesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	win := s.windowFor(filter)
	now := s.now()

	var (
		mu      sync.Mutex
		results = make(map[string]activity.EmployeeSummary, len(roster))
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmployees)

	for _, emp := range roster {
		g.Go(func() error {
			summary, err := s.summarize(gCtx, emp, win, now, cfg.GeneralIdleLimit)
			if err != nil {
				return err
			}
			mu.Lock()
			results[emp.ID] = summary
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return activity.ListSummariesResponse{}, err
	}

	employees := make([]activity.EmployeeSummary, 0, len(roster))
	for _, emp := range roster {
		employees = append(employees, results[emp.ID])
	}

	return activity.ListSummariesResponse{
		Employees: employees,
		Settings:  cfg,
	}, nil
}

// GetEmployeeSummary implements activity.ActivityService.
func (s *ActivityServiceImpl) GetEmployeeSummary(ctx context.Context, employeeID string, filter activity.SummaryFilter) (activity.EmployeeSummary, error) {
	if err := filter.Validate(); err != nil {
		return activity.EmployeeSummary{}, err
	}

	if !validator.IsValidUUID(employeeID) {
		return activity.EmployeeSummary{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return activity.EmployeeSummary{}, err
	}

	cfg, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return activity.EmployeeSummary{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s.summarize(ctx, emp, s.windowFor(filter), s.now(), cfg.GeneralIdleLimit)
}

func (s *ActivityServiceImpl) summarize(ctx context.Context, emp employee.Employee, win shiftWindow, now time.Time, idleLimit int) (activity.EmployeeSummary, error) {
	idle, err := s.idleLogRepo.ListByUser(ctx, emp.Username, win.fetch)
	if err != nil {
		slog.Error("Failed to fetch idle logs", "user", emp.Username, "error", err)
		return activity.EmployeeSummary{}, fmt.Errorf("failed to fetch idle logs for %s: %w", emp.Username, err)
	}

	breaks, err := s.autoBreakRepo.ListByUser(ctx, emp.Username, win.fetch)
	if err != nil {
		slog.Error("Failed to fetch auto-breaks", "user", emp.Username, "error", err)
		return activity.EmployeeSummary{}, fmt.Errorf("failed to fetch auto-breaks for %s: %w", emp.Username, err)
	}

	// Latest status reflects the employee now, not the filtered window.
	status := LatestStatus(idle)
	if win.bounded() {
		all, err := s.idleLogRepo.ListByUser(ctx, emp.Username, activity.TimeRange{})
		if err != nil {
			slog.Error("Failed to fetch latest status", "user", emp.Username, "error", err)
			return activity.EmployeeSummary{}, fmt.Errorf("failed to fetch latest status for %s: %w", emp.Username, err)
		}
		status = LatestStatus(all)
	}

	sessions := win.keep(s.aggregator.Aggregate(idle, breaks, now))

	return activity.EmployeeSummary{
		ID:           emp.ID,
		User:         emp.Username,
		Name:         emp.Name,
		Department:   emp.Department,
		LatestStatus: status,
		Sessions:     sessions,
		Shifts:       GroupByShift(sessions, idleLimit),
	}, nil
}

// shiftWindow selects sessions by shift date. fetch is wide enough to cover
// the late-night part of the last shift date, keep trims to [from, to].
type shiftWindow struct {
	fetch    activity.TimeRange
	fromDate string
	toDate   string
}

func (w shiftWindow) bounded() bool {
	return w.fromDate != "" || w.toDate != ""
}

func (w shiftWindow) keep(sessions []activity.NormalizedSession) []activity.NormalizedSession {
	if !w.bounded() {
		return sessions
	}
	kept := make([]activity.NormalizedSession, 0, len(sessions))
	for _, sess := range sessions {
		if sess.ShiftDate == activity.ShiftDateUnknown {
			continue
		}
		// ShiftDate is YYYY-MM-DD, so string order is date order.
		if w.fromDate != "" && sess.ShiftDate < w.fromDate {
			continue
		}
		if w.toDate != "" && sess.ShiftDate > w.toDate {
			continue
		}
		kept = append(kept, sess)
	}
	return kept
}

// windowFor turns inclusive shift dates into a fetch range of
// [from 00:00, to+1 06:00) in the display zone.
func (s *ActivityServiceImpl) windowFor(filter activity.SummaryFilter) shiftWindow {
	loc := s.classifier.Location()
	var win shiftWindow
	if filter.FromDate != nil {
		d := *filter.FromDate
		from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		win.fetch.From = &from
		win.fromDate = d.Format(activity.ShiftDateLayout)
	}
	if filter.ToDate != nil {
		d := *filter.ToDate
		to := time.Date(d.Year(), d.Month(), d.Day()+1, lateShiftEndHour, 0, 0, 0, loc)
		win.fetch.To = &to
		win.toDate = d.Format(activity.ShiftDateLayout)
	}
	return win
}

// RecordIdleLog implements activity.ActivityService.
func (s *ActivityServiceImpl) RecordIdleLog(ctx context.Context, req activity.RecordIdleLogRequest) (activity.IdleLogResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.IdleLogResponse{}, err
	}

	if err := s.ensureOnRoster(ctx, req.User); err != nil {
		return activity.IdleLogResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return activity.IdleLogResponse{}, fmt.Errorf("failed to generate idle log id: %w", err)
	}

	timestamp := s.now().UTC()
	if req.TimestampAt != nil {
		timestamp = req.TimestampAt.UTC()
	}

	created, err := s.idleLogRepo.Create(ctx, activity.IdleRecord{
		ID:        id.String(),
		User:      req.User,
		Status:    req.Status,
		Reason:    req.Reason,
		Category:  req.Category,
		Timestamp: timestamp,
		IdleStart: utcPtr(req.IdleStartAt),
		IdleEnd:   utcPtr(req.IdleEndAt),
	})
	if err != nil {
		return activity.IdleLogResponse{}, fmt.Errorf("failed to create idle log: %w", err)
	}

	return activity.ToIdleLogResponse(created), nil
}

// CloseIdleLog implements activity.ActivityService.
func (s *ActivityServiceImpl) CloseIdleLog(ctx context.Context, req activity.CloseIdleLogRequest) (activity.IdleLogResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.IdleLogResponse{}, err
	}

	existing, err := s.idleLogRepo.GetByID(ctx, req.ID)
	if err != nil {
		return activity.IdleLogResponse{}, err
	}

	if existing.IdleEnd != nil {
		return activity.IdleLogResponse{}, activity.ErrIdleLogAlreadyClosed
	}

	if existing.IdleStart != nil && req.IdleEndAt.Before(*existing.IdleStart) {
		return activity.IdleLogResponse{}, validator.ValidationErrors{{
			Field:   "idle_end",
			Message: "idle_end must not be before idle_start",
		}}
	}

	updated, err := s.idleLogRepo.SetIdleEnd(ctx, req.ID, req.IdleEndAt.UTC())
	if err != nil {
		return activity.IdleLogResponse{}, err
	}

	return activity.ToIdleLogResponse(updated), nil
}

// RecordAutoBreak implements activity.ActivityService.
func (s *ActivityServiceImpl) RecordAutoBreak(ctx context.Context, req activity.RecordAutoBreakRequest) (activity.AutoBreakResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.AutoBreakResponse{}, err
	}

	if err := s.ensureOnRoster(ctx, req.User); err != nil {
		return activity.AutoBreakResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return activity.AutoBreakResponse{}, fmt.Errorf("failed to generate auto-break id: %w", err)
	}

	// The stored duration is authoritative from here on; readers never recompute it.
	duration := 0
	switch {
	case req.DurationMinutes != nil:
		duration = *req.DurationMinutes
	case req.BreakEndAt != nil:
		duration = DurationMinutes(req.BreakStartAt, *req.BreakEndAt)
	}

	timestamp := s.now().UTC()
	if req.TimestampAt != nil {
		timestamp = req.TimestampAt.UTC()
	}

	start := req.BreakStartAt.UTC()
	created, err := s.autoBreakRepo.Create(ctx, activity.AutoBreakRecord{
		ID:              id.String(),
		User:            req.User,
		Status:          activity.StatusAutoBreak,
		BreakStart:      &start,
		BreakEnd:        utcPtr(req.BreakEndAt),
		DurationMinutes: duration,
		Timestamp:       timestamp,
	})
	if err != nil {
		return activity.AutoBreakResponse{}, fmt.Errorf("failed to create auto-break: %w", err)
	}

	return activity.ToAutoBreakResponse(created), nil
}

func (s *ActivityServiceImpl) ensureOnRoster(ctx context.Context, username string) error {
	exists, err := s.employeeRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check roster for %s: %w", username, err)
	}
	if !exists {
		return activity.ErrUnknownUser
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

var _ activity.ActivityService = (*ActivityServiceImpl)(nil)
