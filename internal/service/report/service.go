package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

var sessionHeaders = []interface{}{
	"Employee", "User", "Kind", "Shift Date", "Shift", "Category", "Reason", "Start", "End", "Duration (min)",
}

var shiftHeaders = []interface{}{
	"Employee", "User", "Shift Date", "Shift",
	activity.CategoryOfficial, activity.CategoryGeneral, activity.CategoryNamaz,
	activity.CategoryUncategorized, activity.CategoryAutoBreak,
	"Total (min)", "Sessions", "General Limit Exceeded",
}

type ReportServiceImpl struct {
	activityService activity.ActivityService
	now             func() time.Time
}

func NewReportService(activityService activity.ActivityService) report.ReportService {
	return &ReportServiceImpl{
		activityService: activityService,
		now:             time.Now,
	}
}

// GenerateActivityWorkbook implements report.ReportService.
func (s *ReportServiceImpl) GenerateActivityWorkbook(ctx context.Context, req report.ActivityReportRequest) (report.ActivityWorkbook, error) {
	summaries, err := s.activityService.ListEmployeeSummaries(ctx, activity.SummaryFilter{From: req.From, To: req.To})
	if err != nil {
		return report.ActivityWorkbook{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", report.SheetSessions); err != nil {
		return report.ActivityWorkbook{}, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(report.SheetShiftTotals); err != nil {
		return report.ActivityWorkbook{}, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return report.ActivityWorkbook{}, fmt.Errorf("failed to create header style: %w", err)
	}
	exceededStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FDE68A"}, Pattern: 1},
	})
	if err != nil {
		return report.ActivityWorkbook{}, fmt.Errorf("failed to create highlight style: %w", err)
	}

	if err := writeSessions(f, summaries.Employees, headerStyle); err != nil {
		return report.ActivityWorkbook{}, err
	}
	if err := writeShiftTotals(f, summaries.Employees, headerStyle, exceededStyle); err != nil {
		return report.ActivityWorkbook{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.ActivityWorkbook{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return report.ActivityWorkbook{
		Filename: fmt.Sprintf("activity-report-%s.xlsx", s.now().UTC().Format("20060102-150405")),
		Content:  buf.Bytes(),
	}, nil
}

func writeSessions(f *excelize.File, employees []activity.EmployeeSummary, headerStyle int) error {
	sheet := report.SheetSessions
	if err := f.SetSheetRow(sheet, "A1", &sessionHeaders); err != nil {
		return fmt.Errorf("failed to write session headers: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style session headers: %w", err)
	}

	row := 2
	for _, emp := range employees {
		for _, sess := range emp.Sessions {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{
				emp.Name, emp.User, string(sess.Kind), sess.ShiftDate, sess.ShiftLabel,
				sess.Category, sess.Reason, sess.StartTimeLocal, sess.EndTimeLocal, sess.Duration,
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write session row %d: %w", row, err)
			}
			row++
		}
	}
	return nil
}

func writeShiftTotals(f *excelize.File, employees []activity.EmployeeSummary, headerStyle, exceededStyle int) error {
	sheet := report.SheetShiftTotals
	if err := f.SetSheetRow(sheet, "A1", &shiftHeaders); err != nil {
		return fmt.Errorf("failed to write shift headers: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style shift headers: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(shiftHeaders))
	if err != nil {
		return err
	}

	row := 2
	for _, emp := range employees {
		for _, g := range emp.Shifts {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			exceeded := "No"
			if g.GeneralExceeded {
				exceeded = "Yes"
			}
			values := []interface{}{
				emp.Name, emp.User, g.ShiftDate, g.ShiftLabel,
				g.Totals[activity.CategoryOfficial], g.Totals[activity.CategoryGeneral], g.Totals[activity.CategoryNamaz],
				g.Totals[activity.CategoryUncategorized], g.Totals[activity.CategoryAutoBreak],
				g.TotalMinutes, g.SessionCount, exceeded,
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write shift row %d: %w", row, err)
			}
			if g.GeneralExceeded {
				if err := f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, row), exceededStyle); err != nil {
					return fmt.Errorf("failed to highlight shift row %d: %w", row, err)
				}
			}
			row++
		}
	}
	return nil
}
