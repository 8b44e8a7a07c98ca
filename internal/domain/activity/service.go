package activity

import (
	"context"
)

// ActivityService serves the dashboard read path and the agent write path.
type ActivityService interface {
	// ListEmployeeSummaries aggregates every roster employee, in roster order.
	ListEmployeeSummaries(ctx context.Context, filter SummaryFilter) (ListSummariesResponse, error)

	// GetEmployeeSummary aggregates a single employee.
	GetEmployeeSummary(ctx context.Context, employeeID string, filter SummaryFilter) (EmployeeSummary, error)

	// RecordIdleLog stores an idle or active interval reported by an agent.
	RecordIdleLog(ctx context.Context, req RecordIdleLogRequest) (IdleLogResponse, error)

	// CloseIdleLog sets the end of an ongoing idle interval.
	CloseIdleLog(ctx context.Context, req CloseIdleLogRequest) (IdleLogResponse, error)

	// RecordAutoBreak stores a system-detected break.
	RecordAutoBreak(ctx context.Context, req RecordAutoBreakRequest) (AutoBreakResponse, error)
}
