package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/config"
	"github.com/Harshavardhanyedla/AttendX/internal/api/handler"
	"github.com/Harshavardhanyedla/AttendX/internal/api/middleware"
	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/pkg/jwt"
	"github.com/Harshavardhanyedla/AttendX/pkg/metrics"
)

// maxBodyBytes bounds request bodies; a full-class batch is a few KB.
const maxBodyBytes = 1 << 20

// Store is what the router needs from Redis.
type Store interface {
	middleware.Revocations
	middleware.Limiter
	Ping(ctx context.Context) error
}

// Pinger checks a dependency for /health.
type Pinger func(ctx context.Context) error

// Deps carries the router's collaborators.
type Deps struct {
	Config        *config.Config
	Handler       *handler.Handler
	JWT           *jwt.Manager
	Store         Store
	Metrics       *metrics.Metrics
	DBPing        Pinger
	SchemaVersion uint
	Logger        *zap.Logger
}

// Setup builds the gin engine.
func Setup(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	h := d.Handler

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger, d.Metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(d.Config.Server.CORS))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health and metrics ──
	r.GET("/health", health(d))
	if d.Config.Metrics.Enabled && d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	staff := middleware.RoleAuth(model.RoleCR, model.RoleAdmin)
	admin := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(d.Store, d.Config.RateLimit.LoginPerMinute, time.Minute, d.Logger), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(d.JWT, d.Store, d.Logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/session", staff, h.Attendance.Session)
				attendance.GET("/students", staff, h.Attendance.ListStudents)
				attendance.GET("/subjects", staff, h.Attendance.ListSubjects)
				attendance.GET("/timetable/today", staff, h.Attendance.TodayTimetable)
				attendance.GET("/timetable.ics", staff, h.Attendance.TimetableCalendar)
				attendance.POST("/mark", staff, h.Attendance.Mark)

				attendance.PUT("/override", admin, h.Attendance.Override)
				attendance.GET("/audit-logs", admin, h.Attendance.ListAuditLogs)
				attendance.GET("/live", admin, h.Attendance.Live)
				attendance.GET("/partial", admin, h.Attendance.Partial)
			}

			reports := authorized.Group("/reports", admin)
			{
				reports.GET("/period", h.Report.Period)
				reports.GET("/daily", h.Report.Daily)
				reports.GET("/student", h.Report.Student)
				reports.GET("/subject", h.Report.Subject)
				reports.GET("/monthly", h.Report.Monthly)
				reports.GET("/download/period", h.Report.DownloadPeriod)
				reports.GET("/download/daily", h.Report.DownloadDaily)
				reports.GET("/download/student", h.Report.DownloadStudent)
			}
		}
	}

	return r
}

func health(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok", "database": "ok", "redis": "ok", "schemaVersion": d.SchemaVersion}
		code := http.StatusOK
		if d.DBPing != nil {
			if err := d.DBPing(ctx); err != nil {
				status["database"] = "down"
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		if d.Store != nil {
			if err := d.Store.Ping(ctx); err != nil {
				status["redis"] = "down"
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, status)
	}
}
