package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/config"
	appHTTP "github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/database"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/repository/postgresql"
	activityService "github.com/cmlabs-hris/activity-monitor-backend/internal/service/activity"
	serviceAuth "github.com/cmlabs-hris/activity-monitor-backend/internal/service/auth"
	employeeService "github.com/cmlabs-hris/activity-monitor-backend/internal/service/employee"
	reportService "github.com/cmlabs-hris/activity-monitor-backend/internal/service/report"
	settingsService "github.com/cmlabs-hris/activity-monitor-backend/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	idleLogRepo := postgresql.NewIdleLogRepository(db)
	autoBreakRepo := postgresql.NewAutoBreakRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.AgentExpiration)

	authSvc := serviceAuth.NewAuthService(jwtService, cfg.Admin.Username, cfg.Admin.PasswordHash)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, cfg.Display.GeneralIdleLimitDefault, cfg.Display.Timezone)
	classifier := activityService.NewShiftClassifier(cfg.Location())
	activitySvc := activityService.NewActivityService(employeeRepo, idleLogRepo, autoBreakRepo, settingsSvc, classifier)
	reportSvc := reportService.NewReportService(activitySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:      logger,
			FrontendURL: cfg.App.FrontendURL,
			JWTService:  jwtService,
		},
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc, activitySvc),
		appHTTP.NewActivityHandler(activitySvc),
		appHTTP.NewSettingsHandler(settingsSvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.Display.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
