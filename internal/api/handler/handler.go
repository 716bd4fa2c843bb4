package handler

import "github.com/Harshavardhanyedla/AttendX/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Attendance *AttendanceHandler
	Report     *ReportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Attendance: NewAttendanceHandler(svc.Session, svc.Attendance, svc.Live, svc.Partial, svc.Roster),
		Report:     NewReportHandler(svc.Report, svc.Export),
	}
}
