package http

import (
	"net/http"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/report"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http/response"
)

type ReportHandler interface {
	// ExportActivity downloads the dashboard as an XLSX workbook.
	ExportActivity(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportActivity handles GET /employees/export
func (h *reportHandlerImpl) ExportActivity(w http.ResponseWriter, r *http.Request) {
	req := report.ActivityReportRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	workbook, err := h.reportService.GenerateActivityWorkbook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, report.ContentTypeXLSX, workbook.Filename, workbook.Content)
}
