package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/config"
	"github.com/Harshavardhanyedla/AttendX/internal/api/handler"
	"github.com/Harshavardhanyedla/AttendX/internal/api/router"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
	"github.com/Harshavardhanyedla/AttendX/internal/service"
	"github.com/Harshavardhanyedla/AttendX/pkg/database"
	"github.com/Harshavardhanyedla/AttendX/pkg/jwt"
	applogger "github.com/Harshavardhanyedla/AttendX/pkg/logger"
	"github.com/Harshavardhanyedla/AttendX/pkg/metrics"
	"github.com/Harshavardhanyedla/AttendX/pkg/redis"
	"github.com/Harshavardhanyedla/AttendX/pkg/validation"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("ATTENDX_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting attendx",
		zap.Int("port", cfg.Server.Port),
		zap.String("submission_policy", cfg.Attendance.SubmissionPolicy),
		zap.String("timezone", cfg.Attendance.Timezone),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	schemaVersion, err := database.RunMigrations(sqlDB, logger)
	if err != nil {
		logger.Fatal("migrate database failed", zap.Error(err))
	}

	// 4. redis: token blacklist and login throttling
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("connect redis failed", zap.Error(err))
	}

	// 5. auth, validation, metrics, clock
	jwtMgr := jwt.NewManager(&cfg.Auth)
	if err := validation.Register(); err != nil {
		logger.Fatal("register validators failed", zap.Error(err))
	}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewDefault()
	}
	loc, err := cfg.Attendance.Location()
	if err != nil {
		logger.Fatal("load timezone failed", zap.Error(err))
	}
	clock := period.NewSystemClock(loc)

	// 6. Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, clock, m, logger)
	h := handler.NewHandler(svc)

	// 7. router
	engine := router.Setup(router.Deps{
		Config:        cfg,
		Handler:       h,
		JWT:           jwtMgr,
		Store:         rdb,
		Metrics:       m,
		DBPing:        sqlDB.PingContext,
		SchemaVersion: schemaVersion,
		Logger:        logger,
	})

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database failed", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("close redis failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
