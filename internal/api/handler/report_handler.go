package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/service"
	"github.com/Harshavardhanyedla/AttendX/pkg/response"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ReportHandler report and export endpoints.
type ReportHandler struct {
	reportSvc service.ReportService
	exportSvc service.ExportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportSvc service.ReportService, exportSvc service.ExportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, exportSvc: exportSvc}
}

// Period
// GET /api/v1/reports/period?date=2026-10-19&period=3
func (h *ReportHandler) Period(c *gin.Context) {
	var q dto.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.reportSvc.Period(c.Request.Context(), q.Date, q.Period)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// Daily
// GET /api/v1/reports/daily?date=2026-10-19
func (h *ReportHandler) Daily(c *gin.Context) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.reportSvc.Daily(c.Request.Context(), q.Date)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// Student
// GET /api/v1/reports/student?studentId=...&startDate=...&endDate=...
func (h *ReportHandler) Student(c *gin.Context) {
	var q dto.StudentReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.reportSvc.Student(c.Request.Context(), &q)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// Subject
// GET /api/v1/reports/subject?subjectId=...&startDate=...&endDate=...
func (h *ReportHandler) Subject(c *gin.Context) {
	var q dto.SubjectReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.reportSvc.Subject(c.Request.Context(), &q)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// ── downloads ──

// Monthly streams the month's CSV.
// GET /api/v1/reports/monthly?month=2026-10
func (h *ReportHandler) Monthly(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.MonthlyCSV(c.Request.Context(), q.Month)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeCSV, buf)
}

// DownloadPeriod
// GET /api/v1/reports/download/period?date=2026-10-19&period=3
func (h *ReportHandler) DownloadPeriod(c *gin.Context) {
	var q dto.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.PeriodWorkbook(c.Request.Context(), q.Date, q.Period)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf)
}

// DownloadDaily
// GET /api/v1/reports/download/daily?date=2026-10-19
func (h *ReportHandler) DownloadDaily(c *gin.Context) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.DailyWorkbook(c.Request.Context(), q.Date)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf)
}

// DownloadStudent
// GET /api/v1/reports/download/student?studentId=...
func (h *ReportHandler) DownloadStudent(c *gin.Context) {
	var q dto.StudentReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.StudentWorkbook(c.Request.Context(), &q)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf)
}

func handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidMonth),
		errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, response.CodeInvalidReport, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, response.CodeStudentNotFound, err.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, response.CodeSubjectNotFound, err.Error())
	default:
		response.InternalError(c)
	}
}
