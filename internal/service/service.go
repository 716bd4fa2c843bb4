package service

import (
	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/config"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
	"github.com/Harshavardhanyedla/AttendX/pkg/jwt"
	"github.com/Harshavardhanyedla/AttendX/pkg/metrics"
)

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	Session    SessionService
	Attendance AttendanceService
	Live       LiveService
	Partial    PartialService
	Report     ReportService
	Export     ExportService
	Roster     RosterService
}

// NewService wires the services over one repository and clock.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	clock period.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	reports := NewReportService(repo, logger)
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, blacklist, logger),
		Session:    NewSessionService(repo, clock, logger),
		Attendance: NewAttendanceService(repo, cfg.Attendance.SubmissionPolicy, clock, m, logger),
		Live:       NewLiveService(repo, clock, logger),
		Partial:    NewPartialService(repo, logger),
		Report:     reports,
		Export:     NewExportService(repo, reports, logger),
		Roster:     NewRosterService(repo, clock, logger),
	}
}
