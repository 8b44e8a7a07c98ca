package report

import "context"

// ReportService renders dashboard data as downloadable files.
type ReportService interface {
	// GenerateActivityWorkbook builds an XLSX of every employee's sessions and shift totals.
	GenerateActivityWorkbook(ctx context.Context, req ActivityReportRequest) (ActivityWorkbook, error)
}
