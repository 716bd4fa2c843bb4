package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/service"
	"github.com/Harshavardhanyedla/AttendX/pkg/response"
)

// AttendanceHandler marking, monitoring and correction endpoints.
type AttendanceHandler struct {
	sessionSvc    service.SessionService
	attendanceSvc service.AttendanceService
	liveSvc       service.LiveService
	partialSvc    service.PartialService
	rosterSvc     service.RosterService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(
	sessionSvc service.SessionService,
	attendanceSvc service.AttendanceService,
	liveSvc service.LiveService,
	partialSvc service.PartialService,
	rosterSvc service.RosterService,
) *AttendanceHandler {
	return &AttendanceHandler{
		sessionSvc:    sessionSvc,
		attendanceSvc: attendanceSvc,
		liveSvc:       liveSvc,
		partialSvc:    partialSvc,
		rosterSvc:     rosterSvc,
	}
}

// ── session and reference data ──

// Session resolves the current (or requested) class.
// GET /api/v1/attendance/session?day=Monday&period=3
func (h *AttendanceHandler) Session(c *gin.Context) {
	var q dto.SessionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.sessionSvc.Resolve(c.Request.Context(), &q)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListStudents
// GET /api/v1/attendance/students?date=2026-10-19&period=3
func (h *AttendanceHandler) ListStudents(c *gin.Context) {
	var q dto.RosterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.rosterSvc.ListStudents(c.Request.Context(), &q)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSubjects
// GET /api/v1/attendance/subjects
func (h *AttendanceHandler) ListSubjects(c *gin.Context) {
	result, err := h.rosterSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// TodayTimetable
// GET /api/v1/attendance/timetable/today
func (h *AttendanceHandler) TodayTimetable(c *gin.Context) {
	result, err := h.rosterSvc.TodayTimetable(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// TimetableCalendar downloads the weekly timetable as iCalendar.
// GET /api/v1/attendance/timetable.ics
func (h *AttendanceHandler) TimetableCalendar(c *gin.Context) {
	buf, filename, err := h.rosterSvc.TimetableCalendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Attachment(c, filename, contentTypeICS, buf)
}

// ── recording ──

// Mark submits one slot's batch.
// POST /api/v1/attendance/mark
func (h *AttendanceHandler) Mark(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.attendanceSvc.Mark(c.Request.Context(), &req, userID)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// Override corrects one stored status.
// PUT /api/v1/attendance/override
func (h *AttendanceHandler) Override(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.attendanceSvc.Override(c.Request.Context(), &req, userID)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListAuditLogs
// GET /api/v1/attendance/audit-logs?limit=50
func (h *AttendanceHandler) ListAuditLogs(c *gin.Context) {
	var q dto.AuditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.attendanceSvc.ListAuditLogs(c.Request.Context(), q.Limit)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ── monitoring ──

// Live is today's per-period status.
// GET /api/v1/attendance/live
func (h *AttendanceHandler) Live(c *gin.Context) {
	result, err := h.liveSvc.Today(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Partial lists students present for some but not all conducted periods.
// GET /api/v1/attendance/partial?date=2026-10-19
func (h *AttendanceHandler) Partial(c *gin.Context) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.partialSvc.Detect(c.Request.Context(), q.Date)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

func handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAttendance),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, response.CodeInvalidAttendance, err.Error())
	case errors.Is(err, service.ErrStatusUnchanged):
		response.BadRequest(c, response.CodeStatusUnchanged, err.Error())
	case errors.Is(err, service.ErrSlotAlreadyMarked):
		response.Conflict(c, response.CodeSlotMarked, err.Error())
	case errors.Is(err, service.ErrOverrideConflict):
		response.Conflict(c, response.CodeOverrideConflict, err.Error())
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, response.CodeRecordNotFound, err.Error())
	default:
		response.InternalError(c)
	}
}
