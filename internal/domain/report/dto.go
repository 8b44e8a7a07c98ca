package report

// ActivityReportRequest uses the same inclusive date bounds as the dashboard.
type ActivityReportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ActivityWorkbook is a rendered XLSX file.
type ActivityWorkbook struct {
	Filename string
	Content  []byte
}

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in the activity workbook.
const (
	SheetSessions    = "Sessions"
	SheetShiftTotals = "Shift Totals"
)
